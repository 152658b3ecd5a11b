package services

import (
	"sync"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/logger"
	"github.com/GiaHeplBro/SEO/internal/models"
	"github.com/GiaHeplBro/SEO/internal/pagination"
)

const auditQueueSize = 256

// auditService records audit events asynchronously. Log enqueues onto a
// buffered channel drained by a single writer goroutine, so request
// handlers never block on audit writes.
type auditService struct {
	db    *gorm.DB
	queue chan models.AuditLog
	done  chan struct{}
	idle  sync.WaitGroup
	once  sync.Once
}

// NewAuditService creates a new AuditServicer and starts its writer.
func NewAuditService(db *gorm.DB) AuditServicer {
	s := &auditService{
		db:    db,
		queue: make(chan models.AuditLog, auditQueueSize),
		done:  make(chan struct{}),
	}
	go s.run()
	return s
}

// run drains the queue until Close.
func (s *auditService) run() {
	for {
		select {
		case entry := <-s.queue:
			s.write(entry)
			s.idle.Done()
		case <-s.done:
			// Drain what is left before exiting.
			for {
				select {
				case entry := <-s.queue:
					s.write(entry)
					s.idle.Done()
				default:
					return
				}
			}
		}
	}
}

// write persists one entry. Errors are logged but never propagate so audit
// failures cannot disrupt the operation being audited.
func (s *auditService) write(entry models.AuditLog) {
	if err := s.db.Create(&entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"user_id", entry.UserID,
			"action", entry.Action,
			"resource_type", entry.ResourceType,
			"resource_id", entry.ResourceID,
		)
	}
}

// Log enqueues an audit event. When the queue is full the event is dropped
// with a warning rather than blocking the caller.
func (s *auditService) Log(entry AuditEntry) {
	record := models.AuditLog{
		UserID:       entry.UserID,
		ClientID:     entry.ClientID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		Details:      entry.Details,
		IPAddress:    entry.IPAddress,
		UserAgent:    entry.UserAgent,
		Timestamp:    time.Now(),
		Metadata:     entry.Metadata,
	}

	s.idle.Add(1)
	select {
	case s.queue <- record:
	default:
		s.idle.Done()
		logger.Get().Warnw("audit log queue full, dropping entry",
			"action", entry.Action,
			"resource_type", entry.ResourceType,
		)
	}
}

// Flush blocks until every enqueued entry has been written.
func (s *auditService) Flush() {
	s.idle.Wait()
}

// Close flushes pending entries and stops the writer.
func (s *auditService) Close() {
	s.once.Do(func() {
		s.idle.Wait()
		close(s.done)
	})
}

// List returns a page of audit logs joined with their users and clients,
// newest first. The query matches actions, details, user names, and client
// names. clients.name comes through a LEFT JOIN, so it is NULL for entries
// without a client; NULL never matches LIKE.
func (s *auditService) List(filter AuditLogFilter, page pagination.PageRequest) (*pagination.PageResponse[AuditLogView], error) {
	page = page.Defaults()

	scoped := s.db.Model(&models.AuditLog{}).
		Joins("JOIN users ON users.id = audit_logs.user_id").
		Joins("LEFT JOIN clients ON clients.id = audit_logs.client_id").
		Scopes(searchScope(filter.Query, "audit_logs.action", "audit_logs.details", "users.full_name", "clients.name"))

	if filter.Action != "" {
		scoped = scoped.Where("audit_logs.action = ?", filter.Action)
	}
	if filter.ResourceType != "" {
		scoped = scoped.Where("audit_logs.resource_type = ?", filter.ResourceType)
	}
	if filter.From != nil {
		scoped = scoped.Where("audit_logs.timestamp >= ?", *filter.From)
	}
	if filter.To != nil {
		scoped = scoped.Where("audit_logs.timestamp < ?", *filter.To)
	}

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	type row struct {
		models.AuditLog
		UserFullName string
		UserAvatar   string
		ClientName   *string
	}
	var rows []row
	err := scoped.
		Select("audit_logs.*, users.full_name AS user_full_name, users.avatar AS user_avatar, clients.name AS client_name").
		Order("audit_logs.timestamp DESC").
		Scopes(pagination.Paginate(page)).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	views := make([]AuditLogView, len(rows))
	for i, r := range rows {
		view := AuditLogView{
			AuditLog: r.AuditLog,
			User:     ActivityUser{ID: r.UserID, FullName: r.UserFullName, Avatar: r.UserAvatar},
		}
		if r.ClientID != nil && r.ClientName != nil {
			view.Client = &ActivityClient{ID: *r.ClientID, Name: *r.ClientName}
		}
		views[i] = view
	}

	resp := pagination.NewPageResponse(views, page, total)
	return &resp, nil
}
