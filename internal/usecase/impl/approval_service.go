package impl

import (
	"context"
	"log/slog"
	"time"

	"backoffice/config"
	deliverycontext "backoffice/internal/delivery/context"
	"backoffice/internal/domain/entity"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/domain/policy"
	"backoffice/internal/domain/repository"
	"backoffice/internal/domain/service"
	"backoffice/internal/usecase"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// approvalListCacheSize bounds the request-list cache. The key space is tiny
// (kind x view) but an LRU keeps eviction handling out of the invalidation
// path.
const approvalListCacheSize = 8

// approvalService implements the ApprovalUsecase interface.
type approvalService struct {
	txManager    repository.TransactionManager
	approvalRepo repository.ApprovalRequestRepository
	statusPolicy policy.StatusPolicy
	publisher    service.EventPublisher
	listCache    *lru.Cache[string, []*entity.ApprovalRequest]
	logger       *slog.Logger
}

// ApprovalServiceParams holds dependencies for approvalService, injected by Fx.
type ApprovalServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	ApprovalRepo repository.ApprovalRequestRepository
	Config       *config.Config
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewApprovalService is the constructor for approvalService.
func NewApprovalService(params ApprovalServiceParams) (usecase.ApprovalUsecase, error) {
	listCache, err := lru.New[string, []*entity.ApprovalRequest](approvalListCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create approval list cache")
	}

	return &approvalService{
		txManager:    params.TxManager,
		approvalRepo: params.ApprovalRepo,
		statusPolicy: policy.FromTable(params.Config.Policy),
		publisher:    params.Publisher,
		listCache:    listCache,
		logger:       params.Logger,
	}, nil
}

func (srv *approvalService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ChangeStatus routes a proposed status change down one of two paths: a
// direct write when the actor's role allows the target status, or a PENDING
// approval request otherwise. The branch is decided by the injected policy
// table alone.
func (srv *approvalService) ChangeStatus(ctx context.Context, input *usecase.ChangeStatusInput) (*usecase.ChangeStatusOutput, error) {
	if !input.Kind.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown entity kind")
	}
	if !input.NewStatus.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown status")
	}

	direct := srv.statusPolicy.AllowsDirect(input.ActorRole, input.NewStatus)
	srv.log(ctx).Info("Processing status change",
		slog.String("kind", input.Kind.String()),
		slog.Any("entityID", input.EntityID),
		slog.String("newStatus", input.NewStatus.String()),
		slog.Any("actorRole", input.ActorRole),
		slog.Bool("direct", direct),
	)

	var output *usecase.ChangeStatusOutput
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		// The target must exist regardless of which path we take.
		if err := srv.checkEntityExists(ctx, repoFactory, input.Kind, input.EntityID); err != nil {
			return err
		}

		if direct {
			if err := srv.applyStatus(ctx, repoFactory, input.Kind, input.EntityID, input.NewStatus); err != nil {
				return err
			}
			output = &usecase.ChangeStatusOutput{Applied: true}

			return nil
		}

		request := &entity.ApprovalRequest{
			EntityKind:      input.Kind,
			EntityID:        input.EntityID,
			RequestedBy:     input.ActorID,
			RequestedStatus: input.NewStatus,
			ApprovalStatus:  entity.ApprovalPending,
		}
		if input.Comment != "" {
			comment := input.Comment
			request.Comment = &comment
		}

		if err := repoFactory.ApprovalRepo().Create(ctx, request); err != nil {
			return errors.Wrap(err, "failed to create approval request")
		}
		output = &usecase.ChangeStatusOutput{Applied: false, Request: request}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Status change failed", slog.Any("entityID", input.EntityID), slog.Any("error", err))

		return nil, err
	}

	srv.invalidateListCache(input.Kind)

	return output, nil
}

// ListPending returns the open requests for an entity kind, oldest first.
func (srv *approvalService) ListPending(ctx context.Context, kind entity.EntityKind) ([]*entity.ApprovalRequest, error) {
	return srv.listRequests(ctx, kind, "pending", srv.approvalRepo.ListPending)
}

// ListArchive returns the resolved requests for an entity kind.
func (srv *approvalService) ListArchive(ctx context.Context, kind entity.EntityKind) ([]*entity.ApprovalRequest, error) {
	return srv.listRequests(ctx, kind, "archive", srv.approvalRepo.ListArchive)
}

func (srv *approvalService) listRequests(
	ctx context.Context,
	kind entity.EntityKind,
	view string,
	load func(context.Context, entity.EntityKind) ([]*entity.ApprovalRequest, error),
) ([]*entity.ApprovalRequest, error) {
	if !kind.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown entity kind")
	}

	cacheKey := kind.String() + ":" + view
	if cached, ok := srv.listCache.Get(cacheKey); ok {
		return cached, nil
	}

	requests, err := load(ctx, kind)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s approval requests", view)
	}

	srv.listCache.Add(cacheKey, requests)

	return requests, nil
}

// Approve resolves a pending request and applies the requested status in the
// same transaction. The repository's guarded resolve makes a lost race
// surface as ErrRequestResolved rather than a double apply.
func (srv *approvalService) Approve(ctx context.Context, input *usecase.DecideInput) (*entity.ApprovalRequest, error) {
	return srv.decide(ctx, input, entity.ApprovalApproved)
}

// Reject resolves a pending request without touching the target entity.
func (srv *approvalService) Reject(ctx context.Context, input *usecase.DecideInput) (*entity.ApprovalRequest, error) {
	return srv.decide(ctx, input, entity.ApprovalRejected)
}

func (srv *approvalService) decide(ctx context.Context, input *usecase.DecideInput, decision entity.ApprovalStatus) (*entity.ApprovalRequest, error) {
	srv.log(ctx).Info("Processing approval decision",
		slog.Any("requestID", input.RequestID),
		slog.String("decision", decision.String()),
		slog.Any("actorRole", input.ActorRole),
	)

	var resolved *entity.ApprovalRequest
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		approvalRepo := repoFactory.ApprovalRepo()

		request, err := approvalRepo.FindByID(ctx, input.RequestID)
		if err != nil {
			if errors.Is(err, repository.ErrApprovalNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "approval request not found")
			}

			return errors.Wrap(err, "failed to load approval request")
		}

		if input.Kind != "" && request.EntityKind != input.Kind {
			return errors.Wrap(domainerrors.ErrNotFound, "approval request not found for this entity kind")
		}

		// Deciding a request needs the same privilege as writing the
		// requested status directly.
		if !srv.statusPolicy.CanDecide(input.ActorRole, request.RequestedStatus) {
			return errors.Wrap(domainerrors.ErrForbidden, "role may not decide this request")
		}

		resolved, err = approvalRepo.Resolve(ctx, input.RequestID, decision, input.ActorID)
		if err != nil {
			if errors.Is(err, repository.ErrApprovalResolved) {
				return errors.Wrap(domainerrors.ErrRequestResolved, "request already decided")
			}

			return errors.Wrap(err, "failed to resolve approval request")
		}

		if decision == entity.ApprovalApproved {
			if err := srv.applyStatus(ctx, repoFactory, resolved.EntityKind, resolved.EntityID, resolved.RequestedStatus); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Approval decision failed", slog.Any("requestID", input.RequestID), slog.Any("error", err))

		return nil, err
	}

	srv.invalidateListCache(resolved.EntityKind)
	srv.publishDecision(ctx, resolved, decision, input)

	return resolved, nil
}

// publishDecision emits the decision event after commit. Delivery failures
// are logged, never returned: the decision already happened.
func (srv *approvalService) publishDecision(ctx context.Context, request *entity.ApprovalRequest, decision entity.ApprovalStatus, input *usecase.DecideInput) {
	event := &service.ApprovalDecidedEvent{
		RequestID:       request.ID,
		EntityKind:      request.EntityKind,
		EntityID:        request.EntityID,
		RequestedBy:     request.RequestedBy,
		RequestedStatus: request.RequestedStatus,
		Decision:        decision,
		DecidedBy:       input.ActorID,
		DecidedAt:       time.Now().UTC(),
		RequestIDTrace:  deliverycontext.GetRequestIDFromContext(ctx),
	}

	if err := srv.publisher.PublishApprovalDecided(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish approval decision event",
			slog.Any("requestID", request.ID),
			slog.Any("error", err),
		)
	}
}

// checkEntityExists verifies the target of a status change.
func (srv *approvalService) checkEntityExists(ctx context.Context, repoFactory repository.RepositoryFactory, kind entity.EntityKind, entityID uuid.UUID) error {
	switch kind {
	case entity.KindProperty:
		if _, err := repoFactory.PropertyRepo().FindByID(ctx, entityID); err != nil {
			if errors.Is(err, repository.ErrPropertyNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "property not found")
			}

			return errors.Wrap(err, "failed to load property")
		}
	case entity.KindLead:
		if _, err := repoFactory.LeadRepo().FindByID(ctx, entityID); err != nil {
			if errors.Is(err, repository.ErrLeadNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "lead not found")
			}

			return errors.Wrap(err, "failed to load lead")
		}
	}

	return nil
}

// applyStatus writes the live status of the target entity.
func (srv *approvalService) applyStatus(ctx context.Context, repoFactory repository.RepositoryFactory, kind entity.EntityKind, entityID uuid.UUID, status entity.ListingStatus) error {
	switch kind {
	case entity.KindProperty:
		if err := repoFactory.PropertyRepo().UpdateStatus(ctx, entityID, status); err != nil {
			return errors.Wrap(err, "failed to update property status")
		}
	case entity.KindLead:
		if err := repoFactory.LeadRepo().UpdateStatus(ctx, entityID, status); err != nil {
			return errors.Wrap(err, "failed to update lead status")
		}
	}

	return nil
}

// invalidateListCache drops the cached request lists for a kind. Both views
// change on every create or decide.
func (srv *approvalService) invalidateListCache(kind entity.EntityKind) {
	srv.listCache.Remove(kind.String() + ":pending")
	srv.listCache.Remove(kind.String() + ":archive")
}
