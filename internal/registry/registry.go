package registry

import (
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/oredesk/ops-api/internal/store"
	"github.com/oredesk/ops-api/internal/types"
	"github.com/oredesk/ops-api/internal/validation"
	"github.com/oredesk/ops-api/pkg/response"
)

// UserRequest creates or replaces a registry user.
type UserRequest struct {
	Name    string `json:"name" validate:"required"`
	Company string `json:"company"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Country string `json:"country"`
	Status  string `json:"status" validate:"omitempty,oneof=Active 'Under Review' Suspended"`
}

// ModerationRequest toggles suspension/restriction. Nil fields are left
// untouched.
type ModerationRequest struct {
	Suspended  *bool `json:"suspended"`
	Restricted *bool `json:"restricted"`
}

// PaymentMethodRequest stores a payment instrument for a user.
type PaymentMethodRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	Type      string `json:"type" validate:"required"`
	Label     string `json:"label"`
	Details   string `json:"details"`
	IsDefault bool   `json:"is_default"`
}

// VideoCallRequest schedules a verification call on a user record.
type VideoCallRequest struct {
	ScheduledFor string `json:"scheduled_for" validate:"required"`
	Purpose      string `json:"purpose"`
	Outcome      string `json:"outcome"`
}

// DocumentRequestPayload asks a user for a document.
type DocumentRequestPayload struct {
	Document string `json:"document" validate:"required"`
}

// VerificationRequest records one verification outcome for a user.
type VerificationRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Field   string `json:"field" validate:"required"`
	Outcome string `json:"outcome" validate:"required"`
	Note    string `json:"note"`
}

// UserView is a registry user with moderation flags resolved from the
// membership side-tables.
type UserView struct {
	types.RegistryUser
	Suspended  bool `json:"suspended"`
	Restricted bool `json:"restricted"`
}

// Service manages the user registry and its moderation state.
type Service struct {
	store *store.Store
}

// NewService creates a registry service backed by the given store.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// AddUser registers a new user.
func (s *Service) AddUser(req UserRequest) types.RegistryUser {
	status := req.Status
	if status == "" {
		status = types.UserStatusUnderReview
	}

	user := types.RegistryUser{
		ID:        "USR_" + uuid.New().String(),
		Name:      req.Name,
		Company:   req.Company,
		Email:     req.Email,
		Phone:     req.Phone,
		Country:   req.Country,
		Status:    status,
		CreatedAt: time.Now().Format(time.RFC3339),
	}

	s.store.Dispatch(store.AddUser{User: user})

	log.Info().
		Str("service", "registry").
		Str("user_id", user.ID).
		Str("status", user.Status).
		Msg("user registered")
	return user
}

// UpdateUser replaces an existing user record. Video calls and document
// requests survive the replacement.
func (s *Service) UpdateUser(userID string, req UserRequest) (types.RegistryUser, error) {
	existing, ok := s.findUser(userID)
	if !ok {
		return types.RegistryUser{}, response.ErrNotFound
	}

	user := existing
	user.Name = req.Name
	user.Company = req.Company
	user.Email = req.Email
	user.Phone = req.Phone
	user.Country = req.Country
	if req.Status != "" {
		user.Status = req.Status
	}

	s.store.Dispatch(store.UpdateUser{User: user})
	return user, nil
}

// Moderate toggles the suspended/restricted state of a user id. The id is
// not required to exist in the registry.
func (s *Service) Moderate(userID string, req ModerationRequest) UserView {
	s.store.Dispatch(store.UpdateUserStatus{
		UserID:     userID,
		Suspended:  req.Suspended,
		Restricted: req.Restricted,
	})

	snapshot := s.store.Snapshot()
	user, _ := s.findUser(userID)
	return UserView{
		RegistryUser: user,
		Suspended:    snapshot.IsSuspended(userID),
		Restricted:   snapshot.IsRestricted(userID),
	}
}

// ListUsers returns all users with their moderation flags resolved.
func (s *Service) ListUsers() []UserView {
	snapshot := s.store.Snapshot()
	out := make([]UserView, 0, len(snapshot.Users))
	for _, user := range snapshot.Users {
		out = append(out, UserView{
			RegistryUser: user,
			Suspended:    snapshot.IsSuspended(user.ID),
			Restricted:   snapshot.IsRestricted(user.ID),
		})
	}
	return out
}

// GetUser returns one user with moderation flags resolved.
func (s *Service) GetUser(userID string) (UserView, error) {
	user, ok := s.findUser(userID)
	if !ok {
		return UserView{}, response.ErrNotFound
	}
	snapshot := s.store.Snapshot()
	return UserView{
		RegistryUser: user,
		Suspended:    snapshot.IsSuspended(userID),
		Restricted:   snapshot.IsRestricted(userID),
	}, nil
}

// AddPaymentMethod stores a payment instrument. The user reference is soft.
func (s *Service) AddPaymentMethod(req PaymentMethodRequest) types.PaymentMethod {
	method := types.PaymentMethod{
		ID:        "PM_" + uuid.New().String(),
		UserID:    req.UserID,
		Type:      req.Type,
		Label:     req.Label,
		Details:   req.Details,
		IsDefault: req.IsDefault,
	}
	s.store.Dispatch(store.AddPaymentMethod{Method: method})
	return method
}

// UpdatePaymentMethod replaces an existing payment instrument.
func (s *Service) UpdatePaymentMethod(methodID string, req PaymentMethodRequest) (types.PaymentMethod, error) {
	found := false
	for _, m := range s.store.Snapshot().PaymentMethods {
		if m.ID == methodID {
			found = true
			break
		}
	}
	if !found {
		return types.PaymentMethod{}, response.ErrNotFound
	}

	method := types.PaymentMethod{
		ID:        methodID,
		UserID:    req.UserID,
		Type:      req.Type,
		Label:     req.Label,
		Details:   req.Details,
		IsDefault: req.IsDefault,
	}
	s.store.Dispatch(store.UpdatePaymentMethod{Method: method})
	return method, nil
}

// AddVideoCall appends a verification call to a user record.
func (s *Service) AddVideoCall(userID string, req VideoCallRequest) error {
	if _, ok := s.findUser(userID); !ok {
		return response.ErrNotFound
	}
	s.store.Dispatch(store.AddVideoCall{
		UserID: userID,
		Call: types.VideoCall{
			ScheduledFor: req.ScheduledFor,
			Purpose:      req.Purpose,
			Outcome:      req.Outcome,
		},
	})
	return nil
}

// AddDocumentRequest appends a document request to a user record.
func (s *Service) AddDocumentRequest(userID string, req DocumentRequestPayload) error {
	if _, ok := s.findUser(userID); !ok {
		return response.ErrNotFound
	}
	s.store.Dispatch(store.AddDocumentRequest{
		UserID: userID,
		Request: types.DocumentRequest{
			Document:    req.Document,
			RequestedAt: time.Now().Format(time.RFC3339),
		},
	})
	return nil
}

// RecordVerification prepends to the bounded verification log.
func (s *Service) RecordVerification(req VerificationRequest) types.VerificationLogEntry {
	entry := types.VerificationLogEntry{
		ID:        "VER_" + uuid.New().String(),
		UserID:    req.UserID,
		Field:     req.Field,
		Outcome:   req.Outcome,
		Note:      req.Note,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	s.store.Dispatch(store.RecordVerification{Entry: entry})
	return entry
}

// VerificationLog returns the newest-first verification entries.
func (s *Service) VerificationLog() []types.VerificationLogEntry {
	return s.store.Snapshot().VerificationLog
}

func (s *Service) findUser(userID string) (types.RegistryUser, bool) {
	snapshot := s.store.Snapshot()
	for i := range snapshot.Users {
		if snapshot.Users[i].ID == userID {
			return snapshot.Users[i], true
		}
	}
	return types.RegistryUser{}, false
}

// GinHandlers contains HTTP handlers for registry endpoints
type GinHandlers struct {
	service  *Service
	validate *validatorv10.Validate
}

// NewGinHandlers creates a new set of HTTP handlers for registry endpoints
func NewGinHandlers(service *Service, validate *validatorv10.Validate) *GinHandlers {
	return &GinHandlers{
		service:  service,
		validate: validate,
	}
}

func (h *GinHandlers) bind(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		response.BadRequest(c, err.Error())
		return false
	}
	if err := h.validate.Struct(out); err != nil {
		response.ValidationFailed(c, validation.ErrorsToMap(err))
		return false
	}
	return true
}

// AddUserHandler handles POST requests registering users
func (h *GinHandlers) AddUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UserRequest
		if !h.bind(c, &req) {
			return
		}
		response.Success(c, h.service.AddUser(req))
	}
}

// UpdateUserHandler handles PUT requests replacing a user record
// URL parameter: user_id
func (h *GinHandlers) UpdateUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UserRequest
		if !h.bind(c, &req) {
			return
		}
		user, err := h.service.UpdateUser(c.Param("user_id"), req)
		response.Handle(c, user, err)
	}
}

// ModerateHandler handles POST requests toggling suspension/restriction
// URL parameter: user_id
func (h *GinHandlers) ModerateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ModerationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		response.Success(c, h.service.Moderate(c.Param("user_id"), req))
	}
}

// ListUsersHandler handles GET requests for the registry
func (h *GinHandlers) ListUsersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, h.service.ListUsers())
	}
}

// GetUserHandler handles GET requests for a single user
// URL parameter: user_id
func (h *GinHandlers) GetUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := h.service.GetUser(c.Param("user_id"))
		response.Handle(c, user, err)
	}
}

// AddPaymentMethodHandler handles POST requests storing payment methods
func (h *GinHandlers) AddPaymentMethodHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PaymentMethodRequest
		if !h.bind(c, &req) {
			return
		}
		response.Success(c, h.service.AddPaymentMethod(req))
	}
}

// UpdatePaymentMethodHandler handles PUT requests replacing a payment method
// URL parameter: method_id
func (h *GinHandlers) UpdatePaymentMethodHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PaymentMethodRequest
		if !h.bind(c, &req) {
			return
		}
		method, err := h.service.UpdatePaymentMethod(c.Param("method_id"), req)
		response.Handle(c, method, err)
	}
}

// AddVideoCallHandler handles POST requests scheduling verification calls
// URL parameter: user_id
func (h *GinHandlers) AddVideoCallHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VideoCallRequest
		if !h.bind(c, &req) {
			return
		}
		err := h.service.AddVideoCall(c.Param("user_id"), req)
		response.Handle(c, gin.H{"message": "video call recorded"}, err)
	}
}

// AddDocumentRequestHandler handles POST requests asking for documents
// URL parameter: user_id
func (h *GinHandlers) AddDocumentRequestHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DocumentRequestPayload
		if !h.bind(c, &req) {
			return
		}
		err := h.service.AddDocumentRequest(c.Param("user_id"), req)
		response.Handle(c, gin.H{"message": "document request recorded"}, err)
	}
}

// RecordVerificationHandler handles POST requests appending verification
// outcomes
func (h *GinHandlers) RecordVerificationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerificationRequest
		if !h.bind(c, &req) {
			return
		}
		response.Success(c, h.service.RecordVerification(req))
	}
}

// VerificationLogHandler handles GET requests for the verification log
func (h *GinHandlers) VerificationLogHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, h.service.VerificationLog())
	}
}
