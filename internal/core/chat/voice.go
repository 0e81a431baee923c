package chat

import (
	"context"
	"errors"
	"strings"

	"ohmycook/internal/pkg/common"
)

// AudioTranscriber 裝置語音轉文字能力
type AudioTranscriber interface {
	Transcribe(ctx context.Context, audio []byte, lang common.Language) (string, error)
}

// AppendSpokenAndReply 轉成文字後送出，語音為空白時不建立訊息
func (s *Store) AppendSpokenAndReply(ctx context.Context, transcriber AudioTranscriber, key string, audio []byte, profile common.UserProfile, lang common.Language, recipe *common.Recipe) (*common.ChatMessage, error) {
	text, err := transcriber.Transcribe(ctx, audio, lang)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, common.NewValidationError("no speech recognized")
	}
	return s.AppendAndReply(ctx, key, text, profile, lang, recipe)
}

var errNoTranscriber = errors.New("audio transcription is not available")

// NoTranscriber 沒有語音能力的裝置
type NoTranscriber struct{}

// Transcribe 總是回傳錯誤
func (NoTranscriber) Transcribe(context.Context, []byte, common.Language) (string, error) {
	return "", errNoTranscriber
}
