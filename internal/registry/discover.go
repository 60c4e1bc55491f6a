package registry

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/agentx-labs/productor/internal/unit"
)

// pass holds the bookkeeping of a single discovery pass.
type pass struct {
	logger      *log.Logger
	units       int
	indexed     int
	diagnostics []Diagnostic
}

func (p *pass) report(d Diagnostic) {
	p.diagnostics = append(p.diagnostics, d)

	fields := []any{"code", d.Code}
	if d.Path != "" {
		fields = append(fields, "path", d.Path)
	}
	if d.Cause != nil {
		fields = append(fields, "err", d.Cause)
	}
	if d.Severity == SeverityError {
		p.logger.Error(d.Message, fields...)
	} else {
		p.logger.Warn(d.Message, fields...)
	}
}

// Scan runs one discovery pass over the search root and returns the
// diagnostics it produced. Units loaded by an earlier pass are skipped, so
// repeated scans only pick up new files.
func (r *Registry[K, T]) Scan() []Diagnostic {
	_, span := r.tracer.Start(context.Background(), "registry.scan")
	defer span.End()

	id := uuid.NewString()
	p := &pass{logger: r.logger.With("pass", id)}
	span.SetAttributes(
		attribute.String("productor.pass", id),
		attribute.String("productor.search_root", r.searchRoot),
		attribute.String("productor.contract", r.contract.String()),
	)

	err := filepath.WalkDir(r.searchRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			p.report(Diagnostic{
				Severity: SeverityWarning,
				Code:     CodeWalkFailed,
				Message:  "skipping unreadable entry",
				Path:     path,
				Cause:    err,
			})
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !r.match.Match(d.Name()) {
			return nil
		}
		if _, done := r.loaded[path]; done {
			return nil
		}

		id, ok := ModulePath(r.discoveryRoot, path, r.suffix)
		if !ok {
			return nil
		}

		// Marked before loading so a failing unit is not retried.
		r.loaded[path] = struct{}{}
		p.units++
		r.loadUnit(p, Unit{ID: id, Path: path})
		return nil
	})
	if err != nil {
		p.report(Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeWalkFailed,
			Message:  "walk stopped early",
			Path:     r.searchRoot,
			Cause:    err,
		})
	}

	r.diagnostics = append(r.diagnostics, p.diagnostics...)

	span.SetAttributes(
		attribute.Int("productor.units_loaded", p.units),
		attribute.Int("productor.entries_indexed", p.indexed),
		attribute.Int("productor.diagnostics", len(p.diagnostics)),
	)
	for _, d := range p.diagnostics {
		span.AddEvent(d.Code, tracingEventOptions(d)...)
		if d.Severity == SeverityError {
			span.SetStatus(codes.Error, d.Message)
		}
	}

	p.logger.Debug("scan complete",
		"root", r.searchRoot,
		"units", p.units,
		"indexed", p.indexed,
		"entries", len(r.entries),
		"diagnostics", len(p.diagnostics),
	)
	return p.diagnostics
}

func (r *Registry[K, T]) loadUnit(p *pass, u Unit) {
	members, err := r.safeLoad(u)
	if err != nil {
		p.report(Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeUnitLoadFailed,
			Message:  fmt.Sprintf("could not load unit %s", u.ID),
			Path:     u.Path,
			Cause:    err,
		})
		return
	}

	for _, m := range members {
		r.consider(p, u, m)
	}
}

func (r *Registry[K, T]) safeLoad(u Unit) (members []unit.Member, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("loader panicked: %v", rec)
		}
	}()
	return r.loader.Load(u.ID, u.Path)
}

// consider indexes m if it is a type declared by u that satisfies the
// contract.
func (r *Registry[K, T]) consider(p *pass, u Unit, m unit.Member) {
	if m.Kind != unit.KindType || m.Type == nil || m.Origin != u.ID {
		return
	}

	key, ok, err := r.candidate(m.Type)
	if err != nil {
		p.report(Diagnostic{
			Severity: SeverityError,
			Code:     CodeCandidateFailed,
			Message:  fmt.Sprintf("skipping %s.%s", u.ID, m.Name),
			Path:     u.Path,
			Cause:    err,
		})
		return
	}
	if !ok {
		return
	}
	r.index(p, key, m.Type, u)
}

func (r *Registry[K, T]) candidate(t reflect.Type) (key K, ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			ok = false
			err = fmt.Errorf("inspecting %s panicked: %v", t, rec)
		}
	}()

	if !r.contract.Accepts(t) {
		return key, false, nil
	}
	if t.Kind() == reflect.Pointer {
		return key, false, fmt.Errorf("type %s is a pointer; register the element type %s instead", t, t.Elem())
	}
	if !instantiable[T](t) {
		return key, false, fmt.Errorf("type %s satisfies %s but cannot be used as %s", t, r.contract, reflect.TypeFor[T]())
	}
	key, err = keyOf[K](t)
	if err != nil {
		return key, false, err
	}
	return key, true, nil
}

func (r *Registry[K, T]) index(p *pass, key K, t reflect.Type, u Unit) {
	if prev, exists := r.sourceOf[key]; exists {
		if r.onDuplicate == KeepFirst {
			p.report(Diagnostic{
				Severity: SeverityWarning,
				Code:     CodeDuplicateKey,
				Message:  fmt.Sprintf("key %v already provided by %s, ignoring %s", key, prev.ID, t),
				Path:     u.Path,
			})
			return
		}
		p.report(Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeDuplicateKey,
			Message:  fmt.Sprintf("key %v from %s replaced by %s", key, prev.ID, t),
			Path:     u.Path,
		})
	}

	r.entries[key] = t
	r.sourceOf[key] = u
	p.indexed++
}
