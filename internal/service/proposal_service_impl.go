package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/proposals/internal/db"
	"github.com/alexanderramin/proposals/internal/diff"
	"github.com/alexanderramin/proposals/internal/domain"
	"github.com/alexanderramin/proposals/internal/repository"
)

type proposalService struct {
	uow          db.UnitOfWork
	now          func() time.Time
	historyLimit int
	observer     UseCaseObserver
}

// ProposalServiceOption customises NewProposalService.
type ProposalServiceOption func(*proposalService)

// WithClock replaces time.Now as the source of createdAt/updatedAt.
func WithClock(now func() time.Time) ProposalServiceOption {
	return func(s *proposalService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithHistoryDocumentLimit keeps the documents of only the newest n archived
// versions of each proposal. 0 keeps every document.
func WithHistoryDocumentLimit(n int) ProposalServiceOption {
	return func(s *proposalService) {
		if n >= 0 {
			s.historyLimit = n
		}
	}
}

// WithObservers attaches use-case observers.
func WithObservers(observers ...UseCaseObserver) ProposalServiceOption {
	return func(s *proposalService) {
		s.observer = useCaseObserverOrNoop(observers)
	}
}

func NewProposalService(uow db.UnitOfWork, opts ...ProposalServiceOption) ProposalService {
	s := &proposalService{
		uow:      uow,
		now:      time.Now,
		observer: NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *proposalService) Save(ctx context.Context, p *domain.SavedProposal) (string, error) {
	return s.save(ctx, "save", p, nil, true)
}

func (s *proposalService) SaveWithChanges(ctx context.Context, p *domain.SavedProposal, changes []string) (string, error) {
	return s.save(ctx, "save-with-changes", p, changes, false)
}

func (s *proposalService) save(ctx context.Context, useCase string, p *domain.SavedProposal, changes []string, derive bool) (id string, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() {
		s.observe(ctx, useCase, startedAt, fields, err)
	}()

	if p == nil {
		return "", opError("save proposal", fmt.Errorf("%w: nil proposal", ErrInvalidInput))
	}
	if verr := domain.Validate(p); verr != nil {
		return "", opError("save proposal", fmt.Errorf("%w: %w", ErrInvalidInput, verr))
	}

	// Work on a copy: the caller's value is input, never output.
	rec := *p
	rec.VersionHistory = nil
	expected := p.Version

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		proposals := repository.NewSQLiteProposalRepo(tx)
		versions := repository.NewSQLiteVersionRepo(tx)

		var prior *domain.SavedProposal
		if rec.ID != "" {
			found, err := proposals.GetByID(ctx, rec.ID)
			switch {
			case err == nil:
				prior = found
			case !errors.Is(err, repository.ErrNotFound):
				return err
			}
		}

		now := s.now().UTC()
		if prior == nil {
			rec.ID = domain.NewID()
			rec.Version = 1
			rec.CreatedAt = now
			rec.UpdatedAt = now
			rec.Denormalize()
			fields["created"] = true
			return proposals.Create(ctx, &rec)
		}

		if expected > 0 && expected != prior.Version {
			return fmt.Errorf("%w: proposal %s is at version %d, expected %d",
				ErrConflict, prior.ID, prior.Version, expected)
		}

		if derive {
			changes = diff.Compare(prior.Snapshot, rec.Snapshot)
		}
		if err := versions.Append(ctx, prior.ID, prior.Archive(changes)); err != nil {
			return err
		}

		rec.Version = domain.NextVersion(prior)
		rec.CreatedAt = prior.CreatedAt
		rec.UpdatedAt = laterThan(now, prior.UpdatedAt)
		rec.Denormalize()
		if err := proposals.Update(ctx, &rec, prior.Version); err != nil {
			if errors.Is(err, repository.ErrStaleVersion) {
				return fmt.Errorf("%w: %w", ErrConflict, err)
			}
			return err
		}

		if s.historyLimit > 0 {
			pruned, err := versions.PruneDocuments(ctx, rec.ID, s.historyLimit)
			if err != nil {
				return err
			}
			fields["pruned_documents"] = pruned
		}
		fields["created"] = false
		fields["changes"] = len(changes)
		return nil
	})
	if err != nil {
		return "", opError("save proposal", err)
	}

	fields["id"] = rec.ID
	fields["version"] = rec.Version
	return rec.ID, nil
}

// laterThan returns now, or prior plus a microsecond when the clock has not
// moved past prior, so updatedAt never goes backwards.
func laterThan(now, prior time.Time) time.Time {
	if now.After(prior) {
		return now
	}
	return prior.Add(time.Microsecond)
}

func (s *proposalService) Load(ctx context.Context, id string) (rec *domain.SavedProposal, err error) {
	startedAt := time.Now()
	fields := map[string]any{"id": id}
	defer func() {
		fields["found"] = rec != nil
		s.observe(ctx, "load", startedAt, fields, err)
	}()

	if id == "" {
		return nil, nil
	}

	err = s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		found, err := repository.NewSQLiteProposalRepo(tx).GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return err
		}
		history, err := repository.NewSQLiteVersionRepo(tx).ListByProposal(ctx, id)
		if err != nil {
			return err
		}
		found.VersionHistory = history
		rec = found
		return nil
	})
	if err != nil {
		return nil, opError("load proposal", err)
	}
	return rec, nil
}

func (s *proposalService) List(ctx context.Context) (list []*domain.SavedProposal, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() {
		fields["count"] = len(list)
		s.observe(ctx, "list", startedAt, fields, err)
	}()

	list, err = s.list(ctx)
	if err != nil {
		return nil, opError("list proposals", err)
	}
	return list, nil
}

func (s *proposalService) list(ctx context.Context) ([]*domain.SavedProposal, error) {
	var list []*domain.SavedProposal
	err := s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		list, err = repository.NewSQLiteProposalRepo(tx).List(ctx)
		return err
	})
	return list, err
}

func (s *proposalService) Search(ctx context.Context, query string) (list []*domain.SavedProposal, err error) {
	startedAt := time.Now()
	query = strings.TrimSpace(query)
	fields := map[string]any{"query": query}
	defer func() {
		fields["count"] = len(list)
		s.observe(ctx, "search", startedAt, fields, err)
	}()

	if query == "" {
		list, err = s.list(ctx)
		if err != nil {
			return nil, opError("search proposals", err)
		}
		return list, nil
	}

	err = s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		list, err = repository.NewSQLiteProposalRepo(tx).Search(ctx, query)
		return err
	})
	if err != nil {
		return nil, opError("search proposals", err)
	}
	return list, nil
}

func (s *proposalService) Delete(ctx context.Context, id string) (removed bool, err error) {
	startedAt := time.Now()
	fields := map[string]any{"id": id}
	defer func() {
		fields["removed"] = removed
		s.observe(ctx, "delete", startedAt, fields, err)
	}()

	if id == "" {
		return false, nil
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		n, err := repository.NewSQLiteVersionRepo(tx).DeleteByProposal(ctx, id)
		if err != nil {
			return err
		}
		fields["versions"] = n
		removed, err = repository.NewSQLiteProposalRepo(tx).Delete(ctx, id)
		return err
	})
	if err != nil {
		return false, opError("delete proposal", err)
	}
	return removed, nil
}

func (s *proposalService) GetVersionHistory(ctx context.Context, id string) (history []domain.VersionEntry, err error) {
	startedAt := time.Now()
	fields := map[string]any{"id": id}
	defer func() {
		fields["count"] = len(history)
		s.observe(ctx, "version-history", startedAt, fields, err)
	}()

	history = []domain.VersionEntry{}
	if id == "" {
		return history, nil
	}
	err = s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		history, err = repository.NewSQLiteVersionRepo(tx).ListByProposal(ctx, id)
		return err
	})
	if err != nil {
		return nil, opError("get version history", err)
	}
	return history, nil
}

func (s *proposalService) CompareVersions(before, after domain.ProposalSnapshot) []string {
	return diff.Compare(before, after)
}

func (s *proposalService) Usage(ctx context.Context) (usage domain.StorageUsage, err error) {
	startedAt := time.Now()
	defer func() {
		s.observe(ctx, "usage", startedAt, nil, err)
	}()

	err = s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		usage, err = repository.NewSQLiteProposalRepo(tx).Usage(ctx)
		return err
	})
	if err != nil {
		return domain.StorageUsage{}, opError("measure storage", err)
	}
	return usage, nil
}

func (s *proposalService) ExportDocument(ctx context.Context, id string, version int) (doc []byte, err error) {
	startedAt := time.Now()
	fields := map[string]any{"id": id, "version": version}
	defer func() {
		fields["bytes"] = len(doc)
		s.observe(ctx, "export-document", startedAt, fields, err)
	}()

	if version < 0 {
		return nil, opError("export document", fmt.Errorf("%w: negative version %d", ErrInvalidInput, version))
	}

	err = s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		proposals := repository.NewSQLiteProposalRepo(tx)
		current, err := proposals.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if version == 0 || version == current.Version {
			doc = current.Document
			return nil
		}
		doc, err = repository.NewSQLiteVersionRepo(tx).GetDocument(ctx, id, version)
		return err
	})
	if err != nil {
		return nil, opError("export document", err)
	}
	return doc, nil
}

func (s *proposalService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
