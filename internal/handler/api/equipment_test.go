//go:build unit

package api_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"equipment-reservation/internal/domain/availability"
	"equipment-reservation/internal/domain/equipment"
	"equipment-reservation/internal/handler/api"
	reqdto "equipment-reservation/internal/handler/dto/request"
	resdto "equipment-reservation/internal/handler/dto/response"
	"equipment-reservation/internal/pkg/errs"
	"equipment-reservation/internal/usecase/commands"
	"equipment-reservation/internal/usecase/queries"
	"equipment-reservation/tests/common/builder"
	"equipment-reservation/tests/common/httptest"
	"equipment-reservation/tests/common/testutil"
	commandsmock "equipment-reservation/tests/mock/commands"
	queriesmock "equipment-reservation/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type EquipmentHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockCommands     *commandsmock.MockEquipmentCommands
	mockQueries      *queriesmock.MockEquipmentQueries
	mockAvailability *queriesmock.MockAvailabilityQueries
	handler          *api.EquipmentHandler
}

func (s *EquipmentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockEquipmentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockEquipmentQueries(s.mockCtrl)
	s.mockAvailability = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewEquipmentHandler(s.mockCommands, s.mockQueries, s.mockAvailability)

	s.router.GET("/equipment", s.handler.List)
	s.router.GET("/equipment/:id", s.handler.Get)
	s.router.GET("/equipment/:id/availability", s.handler.Availability)
	s.router.GET("/equipment/:id/reservations", s.handler.Reservations)
	s.router.GET("/admin/equipment", s.handler.AdminList)
	s.router.POST("/admin/equipment", s.handler.Create)
	s.router.PUT("/admin/equipment/:id", s.handler.Update)
	s.router.DELETE("/admin/equipment/:id", s.handler.Delete)
}

func (s *EquipmentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestEquipmentHandlerSuite(t *testing.T) {
	suite.Run(t, new(EquipmentHandlerTestSuite))
}

func availabilityURL(id uuid.UUID, start, end time.Time, extra url.Values) string {
	q := url.Values{}
	q.Set("start", start.Format(time.RFC3339))
	q.Set("end", end.Format(time.RFC3339))
	for k, v := range extra {
		q[k] = v
	}
	return fmt.Sprintf("/equipment/%s/availability?%s", id, q.Encode())
}

func (s *EquipmentHandlerTestSuite) TestList() {
	items := []*queries.EquipmentView{
		builder.NewEquipmentBuilder().BuildView(),
		builder.NewEquipmentBuilder().Unlimited().BuildView(),
	}

	s.Run("success: lists active equipment", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), queries.EquipmentFilter{}).Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/equipment", nil, "")

		var response []resdto.EquipmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
		s.True(response[1].IsUnlimited)
	})

	s.Run("success: filters by category", func() {
		categoryID := uuid.New()
		s.mockQueries.EXPECT().List(gomock.Any(), queries.EquipmentFilter{CategoryID: &categoryID}).
			Return([]*queries.EquipmentView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/equipment?category_id="+categoryID.String(), nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: include_inactive is ignored on the public list", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), queries.EquipmentFilter{IncludeInactive: false}).Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/equipment?include_inactive=true", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request for a malformed category_id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/equipment?category_id=abc", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})
}

func (s *EquipmentHandlerTestSuite) TestAdminList() {
	s.Run("success: include_inactive reaches the query", func() {
		categoryID := uuid.New()
		s.mockQueries.EXPECT().List(gomock.Any(), queries.EquipmentFilter{CategoryID: &categoryID, IncludeInactive: true}).
			Return([]*queries.EquipmentView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/admin/equipment?include_inactive=true&category_id="+categoryID.String(), nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: defaults to active only", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), queries.EquipmentFilter{}).Return([]*queries.EquipmentView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/equipment", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request for a malformed include_inactive", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/equipment?include_inactive=maybe", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})
}

func (s *EquipmentHandlerTestSuite) TestGet() {
	view := builder.NewEquipmentBuilder().BuildView()

	s.Run("success: returns equipment", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/equipment/"+view.ID.String(), nil, "")

		var response resdto.EquipmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.Name, response.Name)
		s.Equal(view.TotalQuantity, response.TotalQuantity)
	})

	s.Run("error: 404 Not Found", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(nil, queries.ErrEquipmentNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/equipment/"+view.ID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Equipment not found")
	})
}

func (s *EquipmentHandlerTestSuite) TestAvailability() {
	eq := builder.NewEquipmentBuilder().WithStock(5).BuildView()
	start := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	s.Run("success: returns remaining units and defaults quantity to 1", func() {
		s.mockAvailability.EXPECT().CheckAvailability(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in queries.AvailabilityInput) (*queries.AvailabilityView, error) {
				s.Equal(eq.ID, in.EquipmentID)
				s.True(in.Start.Equal(start))
				s.True(in.End.Equal(end))
				s.Equal(1, in.Quantity)
				s.Nil(in.ExcludeReservationID)
				return &queries.AvailabilityView{
					Available: true,
					Remaining: availability.Units(3),
					Reserved:  2,
					Equipment: eq,
				}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, availabilityURL(eq.ID, start, end, nil), nil, "")

		var response resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Available)
		s.False(response.Unlimited)
		s.Require().NotNil(response.Remaining)
		s.Equal(3, *response.Remaining)
		s.Equal(2, response.Reserved)
		s.Equal(eq.ID, response.Equipment.ID)
	})

	s.Run("success: unlimited equipment reports remaining as null", func() {
		unlimited := builder.NewEquipmentBuilder().Unlimited().BuildView()
		s.mockAvailability.EXPECT().CheckAvailability(gomock.Any(), gomock.Any()).
			Return(&queries.AvailabilityView{
				Available: true,
				Remaining: availability.Unlimited(),
				Equipment: unlimited,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			availabilityURL(unlimited.ID, start, end, url.Values{"quantity": {"500"}}), nil, "")

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"remaining":null`)
		s.Contains(rec.Body.String(), `"unlimited":true`)
	})

	s.Run("success: passes quantity and excludeReservationId", func() {
		exclude := uuid.New()
		s.mockAvailability.EXPECT().CheckAvailability(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in queries.AvailabilityInput) (*queries.AvailabilityView, error) {
				s.Equal(4, in.Quantity)
				s.Require().NotNil(in.ExcludeReservationID)
				s.Equal(exclude, *in.ExcludeReservationID)
				return &queries.AvailabilityView{Remaining: availability.Units(0), Reserved: 5, Equipment: eq}, nil
			}).Times(1)

		extra := url.Values{"quantity": {"4"}, "excludeReservationId": {exclude.String()}}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, availabilityURL(eq.ID, start, end, extra), nil, "")

		var response resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.Available)
		s.Equal(0, *response.Remaining)
	})

	s.Run("error: 400 Bad Request on invalid query", func() {
		cases := []struct {
			name string
			path string
		}{
			{name: "missing start", path: fmt.Sprintf("/equipment/%s/availability?end=%s", eq.ID, url.QueryEscape(end.Format(time.RFC3339)))},
			{name: "quantity 0", path: availabilityURL(eq.ID, start, end, url.Values{"quantity": {"0"}})},
			{name: "malformed exclude id", path: availabilityURL(eq.ID, start, end, url.Values{"excludeReservationId": {"abc"}})},
			{name: "malformed time", path: fmt.Sprintf("/equipment/%s/availability?start=today&end=tomorrow", eq.ID)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, tc.path, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
			})
		}
	})

	s.Run("error: maps query errors to proper statuses", func() {
		testCases := []struct {
			name           string
			queryError     error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "invalid interval",
				queryError:     queries.ErrInvalidInterval,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Start time must be before end time",
			},
			{
				name:           "equipment not found",
				queryError:     queries.ErrEquipmentNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Equipment not found",
			},
			{
				name:           "internal server error",
				queryError:     errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockAvailability.EXPECT().CheckAvailability(gomock.Any(), gomock.Any()).
					Return(nil, tc.queryError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, availabilityURL(eq.ID, start, end, nil), nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *EquipmentHandlerTestSuite) TestReservations() {
	eqID := uuid.New()
	start := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)
	path := fmt.Sprintf("/equipment/%s/reservations?start=%s&end=%s", eqID,
		url.QueryEscape(start.Format(time.RFC3339)), url.QueryEscape(end.Format(time.RFC3339)))

	s.Run("success: returns overlapping reservations", func() {
		view := builder.NewReservationBuilder().ForEquipment(eqID).Window(start, start.Add(time.Hour)).BuildView()
		s.mockAvailability.EXPECT().FindOverlapping(gomock.Any(), eqID, gomock.Any(), gomock.Any()).
			Return([]*queries.ReservationView{view}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "")

		var response []resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
		s.NotContains(rec.Body.String(), view.RequesterContact)
	})

	s.Run("error: 400 Bad Request for an inverted window", func() {
		s.mockAvailability.EXPECT().FindOverlapping(gomock.Any(), eqID, gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrInvalidInterval).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Start time must be before end time")
	})
}

func (s *EquipmentHandlerTestSuite) TestCreate() {
	path := "/admin/equipment"
	b := builder.NewEquipmentBuilder()
	reqBody := b.BuildCreateDTO()
	view := b.BuildView()

	s.Run("success: returns 201 Created with the new equipment", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), reqBody).Return(view.ID, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, reqBody, "")

		var response resdto.EquipmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(view.ID, response.ID)
	})

	s.Run("success: description at the domain limit passes binding", func() {
		long := reqBody
		long.Description = strings.Repeat("x", equipment.MaxDescriptionLength)
		s.mockCommands.EXPECT().Create(gomock.Any(), long).Return(view.ID, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, long, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: name (required)", mutate: testutil.Field("name", nil)},
			{name: "negative total_quantity", mutate: testutil.Field("total_quantity", -1)},
			{name: "malformed category_id", mutate: testutil.Field("category_id", "abc")},
			{name: "description over the limit", mutate: testutil.Field("description", strings.Repeat("x", equipment.MaxDescriptionLength+1))},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "invalid equipment",
				commandsError:  errs.Mark(equipment.ErrEmptyName, commands.ErrInvalidEquipment),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid equipment",
			},
			{
				name:           "category not found",
				commandsError:  commands.ErrCategoryNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Category not found",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.Nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *EquipmentHandlerTestSuite) TestUpdate() {
	view := builder.NewEquipmentBuilder().WithStock(8).BuildView()
	path := "/admin/equipment/" + view.ID.String()
	total := 8
	body := reqdto.UpdateEquipmentRequest{TotalQuantity: &total}

	s.Run("success: returns the updated equipment", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), view.ID, body).Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, path, body, "")

		var response resdto.EquipmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(8, response.TotalQuantity)
	})

	s.Run("error: 404 Not Found", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), view.ID, body).Return(commands.ErrEquipmentNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, path, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Equipment not found")
	})
}

func (s *EquipmentHandlerTestSuite) TestDelete() {
	id := uuid.New()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/equipment/"+id.String(), nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 Not Found", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).Return(commands.ErrEquipmentNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/equipment/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Equipment not found")
	})

	s.Run("error: 400 Bad Request for a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/equipment/abc", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}
