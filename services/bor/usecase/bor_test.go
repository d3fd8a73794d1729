package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/estamp/internal/pkg/apperror"
	"github.com/piresc/estamp/services/bor/mocks"
)

func TestBORUC_FetchInstruments(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGW := mocks.NewMockBORGW(ctrl)
	uc := NewBORUC(mockGW)

	mockGW.EXPECT().
		Do(gomock.Any(), http.MethodGet, "/instruments", nil).
		Return(json.RawMessage(`[{"code":"A1"}]`), nil)

	// Act
	result, err := uc.FetchInstruments(context.Background())

	// Assert
	require.NoError(t, err)
	assert.JSONEq(t, `[{"code":"A1"}]`, string(result))
}

func TestBORUC_CalcDuty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGW := mocks.NewMockBORGW(ctrl)
	uc := NewBORUC(mockGW)

	payload := json.RawMessage(`{"instrument":"A1","amount":5000}`)
	mockGW.EXPECT().
		Do(gomock.Any(), http.MethodPost, "/duty/calc", payload).
		Return(json.RawMessage(`{"duty":250}`), nil)

	result, err := uc.CalcDuty(context.Background(), payload)

	require.NoError(t, err)
	assert.JSONEq(t, `{"duty":250}`, string(result))
}

func TestBORUC_IssueStamp_EmptyPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGW := mocks.NewMockBORGW(ctrl)
	uc := NewBORUC(mockGW)

	mockGW.EXPECT().
		Do(gomock.Any(), http.MethodPost, "/stamp/issue", json.RawMessage(`{}`)).
		Return(json.RawMessage(`{"stampId":"S-1"}`), nil)

	result, err := uc.IssueStamp(context.Background(), nil)

	require.NoError(t, err)
	assert.JSONEq(t, `{"stampId":"S-1"}`, string(result))
}

func TestBORUC_VerifyStamp_EscapesID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGW := mocks.NewMockBORGW(ctrl)
	uc := NewBORUC(mockGW)

	mockGW.EXPECT().
		Do(gomock.Any(), http.MethodGet, "/stamp/verify/A%2FB%20C", nil).
		Return(json.RawMessage(`{"valid":true}`), nil)

	_, err := uc.VerifyStamp(context.Background(), "A/B C")

	require.NoError(t, err)
}

func TestBORUC_VerifyStamp_EmptyID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := NewBORUC(mocks.NewMockBORGW(ctrl))

	_, err := uc.VerifyStamp(context.Background(), "  ")

	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestBORUC_PropagatesUpstreamError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGW := mocks.NewMockBORGW(ctrl)
	uc := NewBORUC(mockGW)

	upstreamErr := apperror.Upstream(http.StatusServiceUnavailable, []byte("down"))
	mockGW.EXPECT().Do(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, upstreamErr)

	_, err := uc.FetchInstruments(context.Background())

	assert.ErrorIs(t, err, upstreamErr)
}
