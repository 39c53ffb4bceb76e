package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"taskAdmin/internal/handlers/dto"
	"taskAdmin/internal/logger"
	"taskAdmin/internal/models/task"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountIDHeader несёт opaque id учётки вызывающего. Аутентификация
// выполняется внешним слоем, сюда приходит уже проверенный идентификатор.
const AccountIDHeader = "X-Account-ID"

type TaskHandler struct {
	TaskService TaskService
}

func NewTaskHandler(taskService TaskService) TaskHandler {
	return TaskHandler{
		TaskService: taskService,
	}
}

// callerID достаёт и проверяет идентификатор вызывающего
func callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := r.Header.Get(AccountIDHeader)
	if raw == "" {
		logger.Warn("HTTP: Отсутствует идентификатор учётки",
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnauthorized, "заголовок "+AccountIDHeader+" обязателен")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		logger.Warn("HTTP: Неверный идентификатор учётки",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверный "+AccountIDHeader+": "+err.Error())
		return uuid.Nil, false
	}

	return id, true
}

func taskIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		logger.Warn("HTTP: Не удалось получить id",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "не удалось получить id: "+err.Error())
		return uuid.Nil, false
	}

	if id == uuid.Nil {
		logger.Warn("HTTP: Неверное значение id",
			zap.String("error", "nil id"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "id не может быть пустым")
		return uuid.Nil, false
	}

	return id, true
}

// accountIDParam - идентификатор учётки из пути, с честным текстом ошибки
func accountIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		logger.Warn("HTTP: Не удалось получить идентификатор учётки",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "не удалось получить идентификатор учётки: "+err.Error())
		return uuid.Nil, false
	}

	if id == uuid.Nil {
		logger.Warn("HTTP: Неверный идентификатор учётки",
			zap.String("error", "nil id"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "идентификатор учётки не может быть пустым")
		return uuid.Nil, false
	}

	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return false
	}

	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return false
	}

	return true
}

func (s *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var request dto.CreateTaskRequest
	if !decodeBody(w, r, &request) {
		return
	}

	companyID := uuid.Nil
	if request.CompanyID != nil {
		companyID = *request.CompanyID
	}

	logger.Info("HTTP: Вызов сервиса создания задач")
	created, err := s.TaskService.CreateTask(r.Context(), caller, companyID,
		request.Title, request.Description, request.Deadline,
		request.Priority, request.AssignedTo, request.ReminderDaysBefore)
	if err != nil {
		serviceError(w, r, "create_task", err)
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.String("task_id", created.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, dto.FromTask(created))
}

func (s *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := taskIDParam(w, r)
	if !ok {
		return
	}

	logger.Info("HTTP: Вызов сервиса для получения задачи")
	t, err := s.TaskService.GetTaskByID(r.Context(), id)
	if err != nil {
		serviceError(w, r, "get_task", err)
		return
	}

	logger.Info("HTTP_OUT: Задача получена",
		zap.String("task_id", t.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTask(t))
}

func (s *TaskHandler) UpdateTaskContent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	id, ok := taskIDParam(w, r)
	if !ok {
		return
	}

	var request dto.UpdateTaskRequest
	if !decodeBody(w, r, &request) {
		return
	}

	options := []task.TaskOption{}
	if request.Title != nil {
		options = append(options, task.WithTitle(*request.Title))
	}
	if request.Description != nil {
		options = append(options, task.WithDescription(*request.Description))
	}
	if request.Deadline != nil {
		options = append(options, task.WithDeadline(*request.Deadline))
	}
	if request.Priority != nil {
		options = append(options, task.WithPriority(*request.Priority))
	}
	if request.ReminderDaysBefore != nil {
		options = append(options, task.WithReminderDays(*request.ReminderDaysBefore))
	}

	logger.Info("HTTP: запрос к сервису обновления данных")
	updated, err := s.TaskService.EditContent(r.Context(), caller, id, options...)
	if err != nil {
		serviceError(w, r, "update_task", err)
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.String("task_id", updated.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTask(updated))
}

func (s *TaskHandler) ChangeTaskStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	id, ok := taskIDParam(w, r)
	if !ok {
		return
	}

	var request dto.ChangeStatusRequest
	if !decodeBody(w, r, &request) {
		return
	}

	logger.Info("HTTP: Вызов сервиса смены статуса")
	updated, err := s.TaskService.ApplyStatusChange(r.Context(), caller, id, request.Status)
	if err != nil {
		serviceError(w, r, "change_status", err)
		return
	}

	logger.Info("HTTP_OUT: Статус изменён",
		zap.String("task_id", updated.ID.String()),
		zap.String("status", string(updated.Status)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTask(updated))
}

func (s *TaskHandler) PostComment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	id, ok := taskIDParam(w, r)
	if !ok {
		return
	}

	var request dto.AddCommentRequest
	if !decodeBody(w, r, &request) {
		return
	}

	logger.Info("HTTP: Вызов сервиса добавления комментария")
	comment, err := s.TaskService.AddComment(r.Context(), caller, id, request.Message)
	if err != nil {
		serviceError(w, r, "add_comment", err)
		return
	}

	logger.Info("HTTP_OUT: Комментарий добавлен",
		zap.String("task_id", id.String()),
		zap.String("comment_id", comment.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, dto.FromComment(comment))
}

func (s *TaskHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := taskIDParam(w, r)
	if !ok {
		return
	}

	comments, err := s.TaskService.ListComments(r.Context(), id)
	if err != nil {
		serviceError(w, r, "list_comments", err)
		return
	}

	logger.Info("HTTP_OUT: Комментарии получены",
		zap.String("task_id", id.String()),
		zap.Int("count", len(comments)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromCommentList(comments))
}

func (s *TaskHandler) GetTaskPermissions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	id, ok := taskIDParam(w, r)
	if !ok {
		return
	}

	permissions, err := s.TaskService.CheckPermissions(r.Context(), caller, id)
	if err != nil {
		serviceError(w, r, "check_permissions", err)
		return
	}

	logger.Info("HTTP_OUT: Права вычислены",
		zap.String("task_id", id.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, permissions)
}

func (s *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	companyID, err := uuid.Parse(r.URL.Query().Get("company_id"))
	if err != nil {
		logger.Warn("HTTP: Ошибка получения параметра",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "не удалось получить значение company_id: "+err.Error())
		return
	}

	page := queryIntDefault(r, "page", 1)
	limit := queryIntDefault(r, "limit", 20)
	if page < 1 || limit < 1 {
		logger.Warn("HTTP: Неверное значение параметра",
			zap.Int("page", page),
			zap.Int("limit", limit),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "page и limit должны быть положительными")
		return
	}

	logger.Info("HTTP: Вызов сервиса для получения задач")

	var tasks []*task.Task
	if status := r.URL.Query().Get("status"); status != "" {
		tasks, err = s.TaskService.ListTasksByStatus(r.Context(), companyID, page, limit, task.Status(status))
	} else {
		tasks, err = s.TaskService.ListTasks(r.Context(), companyID, page, limit)
	}
	if err != nil {
		serviceError(w, r, "list_tasks", err)
		return
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTaskList(tasks))
}

func (s *TaskHandler) ResolveIdentity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := accountIDParam(w, r)
	if !ok {
		return
	}

	ident, err := s.TaskService.ResolveIdentity(r.Context(), id)
	if err != nil {
		serviceError(w, r, "resolve_identity", err)
		return
	}

	logger.Info("HTTP_OUT: Учётка разрешена",
		zap.String("account_id", ident.ID.String()),
		zap.String("kind", string(ident.Kind)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromIdentity(ident))
}

func (s *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := s.TaskService.HealthCheck(r.Context()); err != nil {
		responseWithError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	responseWithPayloads(w, http.StatusOK, toPayload("status", "ok"))
}

func queryIntDefault(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}
