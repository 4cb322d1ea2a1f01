package repository

import "errors"

var (
	// ErrForeignKeyViolation indica que uma linha referenciada não existe mais
	ErrForeignKeyViolation = errors.New("violação de integridade referencial")
	ErrUniqueViolation     = errors.New("violação de unicidade")
)
