package get_lab_occupancy

import "errors"

var (
	// ErrInvalidDate возвращается при некорректной или прошедшей дате
	ErrInvalidDate = errors.New("invalid date")

	// ErrLabNotFound возвращается, когда запрошенная лаборатория не найдена
	ErrLabNotFound = errors.New("lab not found")

	// ErrAccessDenied возвращается, когда роль не позволяет получить представление
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
