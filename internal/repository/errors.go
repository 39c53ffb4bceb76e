package repository

import "errors"

// ErrNotFound - запись не найдена в хранилище
var ErrNotFound = errors.New("запись не найдена")
