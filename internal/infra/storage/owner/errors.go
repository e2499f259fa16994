package owner

import "errors"

var (
	// ErrOwnerNotFound возвращается, когда клиент не найден
	ErrOwnerNotFound = errors.New("owner.repository: owner not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("owner.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("owner.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("owner.repository: failed to scan row")
)
