package lab

import "errors"

var (
	// ErrLabNotFound возвращается, когда лаборатория не найдена
	ErrLabNotFound = errors.New("lab.repository: lab not found")

	// ErrWindowNotFound возвращается, когда окно доступности не найдено
	ErrWindowNotFound = errors.New("lab.repository: availability window not found")

	// ErrDisabledNotFound возвращается, когда лаборатория не отключена на дату
	ErrDisabledNotFound = errors.New("lab.repository: lab is not disabled on this date")

	// ErrDuplicateLab возвращается при попытке создать лабораторию с существующим именем
	ErrDuplicateLab = errors.New("lab.repository: lab with this name already exists")

	// ErrAlreadyAssigned возвращается при повторном назначении ассистента
	ErrAlreadyAssigned = errors.New("lab.repository: assistant already assigned to lab")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("lab.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("lab.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("lab.repository: failed to scan row")
)
