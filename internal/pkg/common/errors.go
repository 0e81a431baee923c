package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"` // 僅在 debug 模式顯示
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is 以錯誤代碼比較，讓 Wrap 後的錯誤仍可與預定義錯誤比對
func (e *CustomError) Is(target error) bool {
	var t *CustomError
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

// Wrap 以相同代碼包裝底層錯誤
func (e *CustomError) Wrap(err error) *CustomError {
	return NewError(e.Code, e.Message, e.Status, err)
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// ValidationError 表示驗證錯誤
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError 創建新的驗證錯誤
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// GenerationFailure 外部生成服務呼叫失敗（傳輸錯誤、非成功回應或格式錯誤）
type GenerationFailure struct {
	Op  string
	Err error
}

func (e *GenerationFailure) Error() string {
	return fmt.Sprintf("generation %s failed: %v", e.Op, e.Err)
}

func (e *GenerationFailure) Unwrap() error {
	return e.Err
}

// NewGenerationFailure 創建生成失敗錯誤
func NewGenerationFailure(op string, err error) error {
	return &GenerationFailure{Op: op, Err: err}
}

// IsGenerationFailure 檢查是否為生成失敗
func IsGenerationFailure(err error) bool {
	var g *GenerationFailure
	return errors.As(err, &g)
}

// HydrationFailure 食譜詳細內容載入失敗，食譜維持 pending
type HydrationFailure struct {
	Name string
	Err  error
}

func (e *HydrationFailure) Error() string {
	return fmt.Sprintf("hydrate %q: %v", e.Name, e.Err)
}

func (e *HydrationFailure) Unwrap() error {
	return e.Err
}

// IsHydrationFailure 檢查是否為詳細內容載入失敗
func IsHydrationFailure(err error) bool {
	var h *HydrationFailure
	return errors.As(err, &h)
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest   = "INVALID_REQUEST"    // 400
	ErrCodeNotFound         = "NOT_FOUND"          // 404
	ErrCodeRequestTimeout   = "REQUEST_TIMEOUT"    // 408
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"  // 429
	ErrCodeEmptyIngredients = "EMPTY_INGREDIENT_SET"
	ErrCodeRecipeNotFound   = "RECIPE_NOT_FOUND"
	ErrCodeBatchSuperseded  = "BATCH_SUPERSEDED"

	// 服務器錯誤 (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
	ErrCodeGatewayTimeout     = "GATEWAY_TIMEOUT"     // 504
	ErrCodeGenerationFailure  = "GENERATION_FAILURE"
	ErrCodeHydrationFailure   = "HYDRATION_FAILURE"
)

// 預定義錯誤
var (
	// 客戶端錯誤
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "invalid request", http.StatusBadRequest, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "resource not found", http.StatusNotFound, nil)
	ErrRequestTimeout  = NewError(ErrCodeRequestTimeout, "request timeout", http.StatusRequestTimeout, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "too many requests", http.StatusTooManyRequests, nil)

	// 服務器錯誤
	ErrInternalError      = NewError(ErrCodeInternalError, "internal server error", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "service unavailable", http.StatusServiceUnavailable, nil)
	ErrGatewayTimeout     = NewError(ErrCodeGatewayTimeout, "gateway timeout", http.StatusGatewayTimeout, nil)

	// 業務錯誤
	ErrEmptyIngredientSet = NewError(ErrCodeEmptyIngredients, "ingredient set is empty", http.StatusBadRequest, nil)
	ErrRecipeNotFound     = NewError(ErrCodeRecipeNotFound, "recipe not found", http.StatusNotFound, nil)
	ErrBatchSuperseded    = NewError(ErrCodeBatchSuperseded, "recommendation was superseded", http.StatusConflict, nil)
	ErrInvalidImageFormat = NewError("INVALID_IMAGE_FORMAT", "invalid image format", http.StatusBadRequest, nil)
	ErrInvalidImageSize   = NewError("INVALID_IMAGE_SIZE", "image exceeds size limit", http.StatusBadRequest, nil)
	ErrCacheFull          = NewError("CACHE_FULL", "cache is full", http.StatusServiceUnavailable, nil)
	ErrCacheMiss          = NewError("CACHE_MISS", "cache miss", http.StatusNotFound, nil)
)

// ToCustomError 將任意錯誤轉換為帶狀態碼的 CustomError
func ToCustomError(err error) *CustomError {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrGatewayTimeout.Wrap(err)
	}
	var hf *HydrationFailure
	if errors.As(err, &hf) {
		return NewError(ErrCodeHydrationFailure, "recipe detail could not be loaded", http.StatusBadGateway, err)
	}
	if IsGenerationFailure(err) {
		return NewError(ErrCodeGenerationFailure, "generation service failed", http.StatusBadGateway, err)
	}
	if IsValidationError(err) {
		return NewError(ErrCodeInvalidRequest, err.Error(), http.StatusBadRequest, nil)
	}
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce
	}
	return ErrInternalError.Wrap(err)
}
