package probe

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/agrox/fieldops/internal/backend"
	"github.com/agrox/fieldops/internal/logger"
	"github.com/agrox/fieldops/internal/pkg/apperror"
)

// Op is one remote operation against a single candidate.
type Op[T any] func(ctx context.Context, c Candidate) (T, error)

// Do runs op against the candidates of res: the active one first, then the rest
// in listed order. A missing-target error moves to the next candidate; any other
// error is returned unchanged and the session keeps its previous state, unless
// a concurrent call has recorded a newer one. When
// every candidate is missing the result is a MODULE_UNAVAILABLE AppError.
func Do[T any](ctx context.Context, s *Session, res Resource, op Op[T]) (T, Candidate, error) {
	var zero T

	prev, gen := s.begin(res.Name)
	for _, i := range tryOrder(prev, len(res.Candidates)) {
		c := res.Candidates[i]

		out, err := op(ctx, c)
		if err == nil {
			s.set(res.Name, entry{state: StateActive, active: i, target: c.Target})
			if prev.state != StateActive || prev.active != i {
				logProbe(res.Name, c.Target).Info("probe: candidate active")
			}
			return out, c, nil
		}

		if !backend.IsMissingTarget(err) {
			s.restore(res.Name, prev, gen)
			return zero, c, err
		}
		logProbe(res.Name, c.Target).WithError(err).Debug("probe: candidate missing")
	}

	s.set(res.Name, entry{state: StateUnavailable})
	logProbe(res.Name, "").Warn("probe: no candidate available")
	return zero, Candidate{}, Unavailable(res.Name)
}

// Unavailable is the error Do returns when no candidate of resource exists.
func Unavailable(resource string) error {
	return apperror.Wrap(
		fmt.Errorf("probe: no candidate of %s exists", resource),
		apperror.ErrCodeModuleUnavailable,
		"module not configured",
	)
}

// tryOrder puts the active candidate first and keeps the rest in listed order.
func tryOrder(e entry, n int) []int {
	order := make([]int, 0, n)
	if e.state == StateActive && e.active < n {
		order = append(order, e.active)
	}
	for i := 0; i < n; i++ {
		if e.state == StateActive && i == e.active {
			continue
		}
		order = append(order, i)
	}
	return order
}

// ResolveActive returns the active candidate, or the first listed one when the
// resource has not been probed successfully yet. It makes no remote call.
func ResolveActive(s *Session, res Resource) (Candidate, bool) {
	if len(res.Candidates) == 0 {
		return Candidate{}, false
	}
	if i, ok := s.Active(res.Name); ok && i < len(res.Candidates) {
		return res.Candidates[i], true
	}
	return res.Candidates[0], true
}

func logProbe(resource, target string) *logrus.Entry {
	log := logger.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	fields := logrus.Fields{"resource": resource}
	if target != "" {
		fields["target"] = target
	}
	return log.WithFields(fields)
}
