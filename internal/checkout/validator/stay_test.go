package validator

import (
	"errors"
	checkouterrors "stayhub/internal/checkout/errors"
	"stayhub/pkg/logger"
	"stayhub/pkg/model"
	"testing"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func TestNights(t *testing.T) {
	v := NewStayValidator(testLogger())

	tests := []struct {
		name       string
		checkIn    string
		checkOut   string
		wantNights int
		wantErr    error
	}{
		{
			name:       "four night stay",
			checkIn:    "2025-06-01",
			checkOut:   "2025-06-05",
			wantNights: 4,
		},
		{
			name:       "single night",
			checkIn:    "2025-06-01",
			checkOut:   "2025-06-02",
			wantNights: 1,
		},
		{
			name:     "same day rejected",
			checkIn:  "2025-06-01",
			checkOut: "2025-06-01",
			wantErr:  checkouterrors.ErrZeroNights,
		},
		{
			name:       "reversed range still counts nights",
			checkIn:    "2025-06-05",
			checkOut:   "2025-06-01",
			wantNights: 4,
		},
		{
			name:     "garbage check-in",
			checkIn:  "not-a-date",
			checkOut: "2025-06-05",
			wantErr:  checkouterrors.ErrUnparseableDates,
		},
		{
			name:     "garbage check-out",
			checkIn:  "2025-06-01",
			checkOut: "05/06/2025",
			wantErr:  checkouterrors.ErrUnparseableDates,
		},
		{
			name:     "impossible calendar date",
			checkIn:  "2025-02-30",
			checkOut: "2025-03-05",
			wantErr:  checkouterrors.ErrUnparseableDates,
		},
		{
			name:     "empty dates",
			checkIn:  "",
			checkOut: "",
			wantErr:  checkouterrors.ErrUnparseableDates,
		},
		{
			name:       "spans a month boundary",
			checkIn:    "2025-01-30",
			checkOut:   "2025-02-02",
			wantNights: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nights, err := v.Nights(model.DateRange{CheckIn: tt.checkIn, CheckOut: tt.checkOut})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Nights() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Nights() unexpected error: %v", err)
			}
			if nights != tt.wantNights {
				t.Errorf("Nights() = %d, want %d", nights, tt.wantNights)
			}
			if nights < 1 {
				t.Errorf("Nights() returned %d, want at least 1 for any accepted range", nights)
			}
		})
	}
}

func TestValidateRequest(t *testing.T) {
	v := NewStayValidator(testLogger())

	tests := []struct {
		name      string
		req       *model.CheckoutRequest
		wantError bool
	}{
		{
			name: "valid request",
			req: &model.CheckoutRequest{
				PropertyID: "507f1f77bcf86cd799439011",
				CheckIn:    "2025-06-01",
				CheckOut:   "2025-06-05",
				Guests:     2,
			},
			wantError: false,
		},
		{
			name: "guests optional",
			req: &model.CheckoutRequest{
				PropertyID: "507f1f77bcf86cd799439011",
				CheckIn:    "2025-06-01",
				CheckOut:   "2025-06-05",
			},
			wantError: false,
		},
		{
			name: "missing property id",
			req: &model.CheckoutRequest{
				CheckIn:  "2025-06-01",
				CheckOut: "2025-06-05",
			},
			wantError: true,
		},
		{
			name: "malformed property id",
			req: &model.CheckoutRequest{
				PropertyID: "not-an-object-id",
				CheckIn:    "2025-06-01",
				CheckOut:   "2025-06-05",
			},
			wantError: true,
		},
		{
			name: "missing check-in",
			req: &model.CheckoutRequest{
				PropertyID: "507f1f77bcf86cd799439011",
				CheckOut:   "2025-06-05",
			},
			wantError: true,
		},
		{
			// Date shape is Nights's job. A present-but-garbage date must
			// pass the shape check so it can surface as a date-range error.
			name: "malformed dates pass shape check",
			req: &model.CheckoutRequest{
				PropertyID: "507f1f77bcf86cd799439011",
				CheckIn:    "06/01/2025",
				CheckOut:   "2025-06-05",
			},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRequest(tt.req)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateRequest() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}
