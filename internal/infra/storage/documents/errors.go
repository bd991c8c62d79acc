package documents

import "errors"

var (
	// ErrNotFound возвращается, когда документ с ключом отсутствует
	ErrNotFound = errors.New("documents: not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("documents: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения запроса к хранилищу
	ErrExecQuery = errors.New("documents: failed to execute query")

	// ErrCorrupted возвращается, когда документ не удалось разобрать
	ErrCorrupted = errors.New("documents: corrupted document")
)
