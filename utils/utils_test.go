package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken(t *testing.T) {
	token, err := GenerateToken("secret", "user-1", time.Hour)
	require.NoError(t, err)

	userID, err := ValidateToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	_, err = ValidateToken("other", token)
	assert.Error(t, err)

	_, err = ValidateToken("", token)
	assert.Error(t, err)

	expired, err := GenerateToken("secret", "user-1", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken("secret", expired)
	assert.Error(t, err)
}

func TestSanitizeString(t *testing.T) {
	tests := map[string]string{
		"  plain  ":                           "plain",
		"<b>bold</b> text":                    "bold text",
		`<img src=x onerror="alert(1)">hello`: "hello",
		"Tom & Jerry":                         "Tom &amp; Jerry",
		`click data:text/html;base64,AAAA me`: "click",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeString(in), in)
	}
}

func TestValidateCouponValue(t *testing.T) {
	assert.NoError(t, ValidateCouponValue("percent", 100))
	assert.NoError(t, ValidateCouponValue("flat", 5000))
	assert.Error(t, ValidateCouponValue("percent", 100.5))
	assert.Error(t, ValidateCouponValue("flat", -1))
}

func TestValidateRating(t *testing.T) {
	for r := MinRating; r <= MaxRating; r++ {
		assert.NoError(t, ValidateRating(r))
	}
	assert.Error(t, ValidateRating(MinRating-1))
	assert.Error(t, ValidateRating(MaxRating+1))
}

func TestNewPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		query          string
		page, pageSize int
	}{
		{"", 1, DefaultPageSize},
		{"?page=3&pageSize=20", 3, 20},
		{"?page=0&pageSize=-5", 1, DefaultPageSize},
		{"?page=abc&pageSize=1000", 1, MaxPageSize},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/orders"+tt.query, nil)
		p := NewPagination(c)
		assert.Equal(t, tt.page, p.Page, tt.query)
		assert.Equal(t, tt.pageSize, p.PageSize, tt.query)
		assert.Equal(t, (tt.page-1)*tt.pageSize, p.Offset, tt.query)
	}
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sentinel := errors.New("coupon expired")

	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"client error keeps its message", errors.Wrap(BadRequestError("Coupon expired", sentinel), "validate"), http.StatusBadRequest, `{"message":"Coupon expired"}`},
		{"internal app error is hidden", InternalError("db exploded", sentinel), http.StatusInternalServerError, `{"message":"Server error"}`},
		{"plain error is hidden", errors.New("boom"), http.StatusInternalServerError, `{"message":"Server error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			RespondError(c, tt.err)
			assert.Equal(t, tt.code, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestAppErrorChain(t *testing.T) {
	sentinel := errors.New("not found")
	err := errors.Wrap(NotFoundError("Order not found", sentinel), "load order")

	assert.True(t, IsNotFoundError(err))
	assert.False(t, IsNotFoundError(BadRequestError("Invalid status", sentinel)))
	assert.True(t, errors.Is(err, sentinel))
	require.NotNil(t, GetAppError(err))
	assert.Equal(t, "Order not found", GetAppError(err).Message)
	assert.Nil(t, GetAppError(errors.New("plain")))
}

func TestNewMailerWithoutConfig(t *testing.T) {
	mailer := NewMailer(EmailConfig{Host: "smtp.example.com"})
	assert.ErrorIs(t, mailer.Send("a@example.com", "s", "b"), ErrMailNotConfigured)
}
