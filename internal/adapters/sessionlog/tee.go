package sessionlog

import (
	"context"
	"errors"

	"github.com/xvierd/pomotray/internal/domain"
	"github.com/xvierd/pomotray/internal/ports"
)

// Tee appends every record to all of its loggers, in order. A failing
// logger does not stop the others.
type Tee []ports.SessionLogger

// Ensure Tee implements ports.SessionLogger.
var _ ports.SessionLogger = Tee(nil)

// Append writes the record to every logger and joins their errors.
func (t Tee) Append(ctx context.Context, entry domain.LogEntry) error {
	var errs []error
	for _, l := range t {
		if l == nil {
			continue
		}
		if err := l.Append(ctx, entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
