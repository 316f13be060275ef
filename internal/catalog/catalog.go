package catalog

import (
	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/oredesk/ops-api/internal/store"
	"github.com/oredesk/ops-api/internal/types"
	"github.com/oredesk/ops-api/internal/validation"
	"github.com/oredesk/ops-api/pkg/response"
)

// MineralRequest creates or replaces a marketplace listing.
type MineralRequest struct {
	Name         string `json:"name" validate:"required"`
	Grade        string `json:"grade"`
	PricePerUnit string `json:"price_per_unit"`
	Unit         string `json:"unit"`
	Origin       string `json:"origin"`
	Available    bool   `json:"available"`
}

// FacilityRequest creates or replaces a facility.
type FacilityRequest struct {
	Name     string   `json:"name" validate:"required"`
	Country  string   `json:"country"`
	Region   string   `json:"region"`
	Capacity string   `json:"capacity"`
	Minerals []string `json:"minerals"`
}

// TestingOrderRequest creates or replaces an active testing record.
type TestingOrderRequest struct {
	OrderID            string `json:"order_id" validate:"required"`
	Lab                string `json:"lab" validate:"required"`
	Stage              string `json:"stage" validate:"required"`
	ExpectedCompletion string `json:"expected_completion"`
}

// CategoryRequest appends a custom category name.
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// Service handles minerals, facilities, testing records and categories.
type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

func (s *Service) AddMineral(req MineralRequest) types.Mineral {
	mineral := types.Mineral{
		ID:           "MIN_" + uuid.New().String(),
		Name:         req.Name,
		Grade:        req.Grade,
		PricePerUnit: req.PricePerUnit,
		Unit:         req.Unit,
		Origin:       req.Origin,
		Available:    req.Available,
	}
	s.store.Dispatch(store.AddMineral{Mineral: mineral})
	return mineral
}

func (s *Service) UpdateMineral(mineralID string, req MineralRequest) (types.Mineral, error) {
	if !s.mineralExists(mineralID) {
		return types.Mineral{}, response.ErrNotFound
	}
	mineral := types.Mineral{
		ID:           mineralID,
		Name:         req.Name,
		Grade:        req.Grade,
		PricePerUnit: req.PricePerUnit,
		Unit:         req.Unit,
		Origin:       req.Origin,
		Available:    req.Available,
	}
	s.store.Dispatch(store.UpdateMineral{Mineral: mineral})
	return mineral, nil
}

// RemoveMineral deletes a listing. This is the one entity the model removes
// physically.
func (s *Service) RemoveMineral(mineralID string) error {
	if !s.mineralExists(mineralID) {
		return response.ErrNotFound
	}
	s.store.Dispatch(store.RemoveMineral{MineralID: mineralID})
	return nil
}

func (s *Service) ListMinerals() []types.Mineral {
	return s.store.Snapshot().Minerals
}

func (s *Service) mineralExists(mineralID string) bool {
	for _, m := range s.store.Snapshot().Minerals {
		if m.ID == mineralID {
			return true
		}
	}
	return false
}

func (s *Service) AddFacility(req FacilityRequest) types.Facility {
	facility := types.Facility{
		ID:       "FAC_" + uuid.New().String(),
		Name:     req.Name,
		Country:  req.Country,
		Region:   req.Region,
		Capacity: req.Capacity,
		Minerals: req.Minerals,
	}
	s.store.Dispatch(store.AddFacility{Facility: facility})
	return facility
}

func (s *Service) UpdateFacility(facilityID string, req FacilityRequest) (types.Facility, error) {
	found := false
	for _, f := range s.store.Snapshot().Facilities {
		if f.ID == facilityID {
			found = true
			break
		}
	}
	if !found {
		return types.Facility{}, response.ErrNotFound
	}
	facility := types.Facility{
		ID:       facilityID,
		Name:     req.Name,
		Country:  req.Country,
		Region:   req.Region,
		Capacity: req.Capacity,
		Minerals: req.Minerals,
	}
	s.store.Dispatch(store.UpdateFacility{Facility: facility})
	return facility, nil
}

func (s *Service) ListFacilities() []types.Facility {
	return s.store.Snapshot().Facilities
}

func (s *Service) AddTestingOrder(req TestingOrderRequest) types.ActiveTestingOrder {
	testing := types.ActiveTestingOrder{
		ID:                 "TST_" + uuid.New().String(),
		OrderID:            req.OrderID,
		Lab:                req.Lab,
		Stage:              req.Stage,
		ExpectedCompletion: req.ExpectedCompletion,
	}
	s.store.Dispatch(store.AddActiveTestingOrder{Testing: testing})
	return testing
}

func (s *Service) UpdateTestingOrder(testingID string, req TestingOrderRequest) (types.ActiveTestingOrder, error) {
	found := false
	for _, t := range s.store.Snapshot().ActiveTesting {
		if t.ID == testingID {
			found = true
			break
		}
	}
	if !found {
		return types.ActiveTestingOrder{}, response.ErrNotFound
	}
	testing := types.ActiveTestingOrder{
		ID:                 testingID,
		OrderID:            req.OrderID,
		Lab:                req.Lab,
		Stage:              req.Stage,
		ExpectedCompletion: req.ExpectedCompletion,
	}
	s.store.Dispatch(store.UpdateActiveTestingOrder{Testing: testing})
	return testing, nil
}

func (s *Service) ListTestingOrders() []types.ActiveTestingOrder {
	return s.store.Snapshot().ActiveTesting
}

func (s *Service) AddCategory(req CategoryRequest) []string {
	s.store.Dispatch(store.AddCustomCategory{Name: req.Name})
	return s.store.Snapshot().CustomCategories
}

func (s *Service) ListCategories() []string {
	return s.store.Snapshot().CustomCategories
}

// GinHandlers contains HTTP handlers for catalog endpoints
type GinHandlers struct {
	service  *Service
	validate *validatorv10.Validate
}

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

func (h *GinHandlers) AddMineralHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MineralRequest
		if !h.bind(c, &req) {
			return
		}
		response.Success(c, h.service.AddMineral(req))
	}
}

func (h *GinHandlers) UpdateMineralHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MineralRequest
		if !h.bind(c, &req) {
			return
		}
		mineral, err := h.service.UpdateMineral(c.Param("mineral_id"), req)
		response.Handle(c, mineral, err)
	}
}

func (h *GinHandlers) RemoveMineralHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		err := h.service.RemoveMineral(c.Param("mineral_id"))
		response.Handle(c, gin.H{"message": "mineral removed"}, err)
	}
}

func (h *GinHandlers) ListMineralsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, h.service.ListMinerals())
	}
}

func (h *GinHandlers) AddFacilityHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FacilityRequest
		if !h.bind(c, &req) {
			return
		}
		response.Success(c, h.service.AddFacility(req))
	}
}

func (h *GinHandlers) UpdateFacilityHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FacilityRequest
		if !h.bind(c, &req) {
			return
		}
		facility, err := h.service.UpdateFacility(c.Param("facility_id"), req)
		response.Handle(c, facility, err)
	}
}

func (h *GinHandlers) ListFacilitiesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, h.service.ListFacilities())
	}
}

func (h *GinHandlers) AddTestingOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TestingOrderRequest
		if !h.bind(c, &req) {
			return
		}
		response.Success(c, h.service.AddTestingOrder(req))
	}
}

func (h *GinHandlers) UpdateTestingOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TestingOrderRequest
		if !h.bind(c, &req) {
			return
		}
		testing, err := h.service.UpdateTestingOrder(c.Param("testing_id"), req)
		response.Handle(c, testing, err)
	}
}

func (h *GinHandlers) ListTestingOrdersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, h.service.ListTestingOrders())
	}
}

func (h *GinHandlers) AddCategoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryRequest
		if !h.bind(c, &req) {
			return
		}
		response.Success(c, h.service.AddCategory(req))
	}
}

func (h *GinHandlers) ListCategoriesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, h.service.ListCategories())
	}
}
