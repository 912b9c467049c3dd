package core

import (
	"errors"

	"dbgext/internal/host"
)

// Translate переводит итог команды в код хоста:
// nil -> StatusOK, ошибка с нативным кодом -> этот код, остальное -> StatusFail.
func Translate(err error) host.Status {
	if err == nil {
		return host.StatusOK
	}
	var acqErr *host.AcquireError
	if errors.As(err, &acqErr) {
		return host.StatusFail
	}
	var hostErr *host.Error
	if errors.As(err, &hostErr) && !hostErr.Code.Succeeded() {
		return hostErr.Code
	}
	return host.StatusFail
}
