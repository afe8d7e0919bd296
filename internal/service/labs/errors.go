package labs

import "errors"

var (
	// ErrLabNotFound возвращается, когда лаборатория не найдена
	ErrLabNotFound = errors.New("lab not found")

	// ErrWindowNotFound возвращается, когда окно доступности не найдено
	ErrWindowNotFound = errors.New("availability window not found")

	// ErrNotDisabled возвращается при включении лаборатории, которая не была отключена
	ErrNotDisabled = errors.New("lab is not disabled on this date")

	// ErrLabAlreadyExists возвращается при попытке создать лабораторию с занятым именем
	ErrLabAlreadyExists = errors.New("lab already exists")

	// ErrAlreadyAssigned возвращается при повторном назначении лаборанта
	ErrAlreadyAssigned = errors.New("assistant already assigned to this lab")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
