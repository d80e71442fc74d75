package handlers

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/futig/puppy-picker/internal/entity"
	"github.com/futig/puppy-picker/internal/pkg/formatter"
	"github.com/futig/puppy-picker/internal/questionnaire"
	"github.com/futig/puppy-picker/internal/repository"
	"github.com/futig/puppy-picker/internal/telegram/keyboard"
	"github.com/futig/puppy-picker/internal/telegram/render"
	"github.com/futig/puppy-picker/internal/usecase/session"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const (
	testChatID    int64 = 100
	testUserID    int64 = 7
	testMessageID       = 42
)

type fakeBot struct {
	mu        sync.Mutex
	sent      []tgbotapi.Chattable
	requests  []tgbotapi.Chattable
	failEdits bool
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := c.(tgbotapi.EditMessageTextConfig); ok && b.failEdits {
		return tgbotapi.Message{}, errors.New("Bad Request: message to edit not found")
	}
	b.sent = append(b.sent, c)
	return tgbotapi.Message{MessageID: testMessageID}, nil
}

func (b *fakeBot) setFailEdits(fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failEdits = fail
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) lastEditText() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.sent) - 1; i >= 0; i-- {
		if edit, ok := b.sent[i].(tgbotapi.EditMessageTextConfig); ok {
			return edit.Text
		}
	}
	return ""
}

func (b *fakeBot) lastCallbackText() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.requests) - 1; i >= 0; i-- {
		if cb, ok := b.requests[i].(tgbotapi.CallbackConfig); ok {
			return cb.Text
		}
	}
	return ""
}

func (b *fakeBot) documents() []tgbotapi.DocumentConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	var docs []tgbotapi.DocumentConfig
	for _, c := range b.sent {
		if doc, ok := c.(tgbotapi.DocumentConfig); ok {
			docs = append(docs, doc)
		}
	}
	return docs
}

type stubRecommender struct{}

func (stubRecommender) Recommend(context.Context, entity.AnswerSet) (string, error) {
	return "Cavalier King Charles Spaniel\n\nGentle and happy in a flat.", nil
}

type testBot struct {
	bot      *fakeBot
	repo     *repository.SessionCache
	flow     *Flow
	command  *CommandHandler
	callback *CallbackHandler
}

func newTestBot(t *testing.T) *testBot {
	t.Helper()

	repo := repository.NewSessionCache(time.Minute, time.Minute)
	t.Cleanup(repo.Close)

	logger := zap.NewNop()
	sessionUC := session.NewUsecase(repo, stubRecommender{}, formatter.NewFactory(), logger,
		questionnaire.WithAdvanceDelay(time.Millisecond))

	bot := &fakeBot{}
	sender := NewMessageSender(bot, logger)
	kb := keyboard.NewBuilder()
	flow := NewFlow(sessionUC, sender, kb, logger)

	return &testBot{
		bot:      bot,
		repo:     repo,
		flow:     flow,
		command:  NewCommandHandler(sender, flow, kb, logger),
		callback: NewCallbackHandler(bot, sender, sessionUC, flow, logger),
	}
}

func (tb *testBot) press(t *testing.T, data string) {
	t.Helper()
	require.NoError(t, tb.pressCtx(context.Background(), data))
}

func (tb *testBot) pressCtx(ctx context.Context, data string) error {
	return tb.callback.Handle(ctx, &Message{
		ChatID:       testChatID,
		UserID:       testUserID,
		MessageID:    testMessageID,
		CallbackData: data,
		CallbackID:   "cb",
	})
}

func (tb *testBot) tracked() int {
	tb.flow.mu.Lock()
	defer tb.flow.mu.Unlock()
	return len(tb.flow.chats)
}

// answerAll walks the questionnaire up to the ready-to-submit state
func (tb *testBot) answerAll(t *testing.T) {
	t.Helper()
	questions := entity.Questions()
	chosen := answers()

	tb.press(t, keyboard.EncodeCallback(keyboard.ActionControl, keyboard.ControlStart))
	for i, q := range questions {
		tb.press(t, keyboard.EncodeOption(q.ID, chosen[q.ID]))
		if i == len(questions)-1 {
			break
		}
		next := questions[i+1].Text
		require.Eventually(t, func() bool {
			return strings.Contains(tb.bot.lastEditText(), next)
		}, time.Second, time.Millisecond)
	}
}

func answers() entity.AnswerSet {
	return entity.AnswerSet{
		entity.QuestionActivityLevel:       "low",
		entity.QuestionLivingSpace:         "apartment",
		entity.QuestionExperience:          "none",
		entity.QuestionTimeCommitment:      "minimal",
		entity.QuestionBreedSize:           "small",
		entity.QuestionGroomingWillingness: "moderate",
		entity.QuestionTrainability:        "easy",
	}
}

func TestCommandHandler_Start(t *testing.T) {
	tb := newTestBot(t)

	err := tb.command.Handle(context.Background(), &Message{ChatID: testChatID, UserID: testUserID, Command: "start"})
	require.NoError(t, err)

	require.Len(t, tb.bot.sent, 1)
	msg, ok := tb.bot.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, render.MsgWelcome, msg.Text)
	assert.NotNil(t, msg.ReplyMarkup)
}

func TestCommandHandler_FreeText(t *testing.T) {
	tb := newTestBot(t)

	err := tb.command.Handle(context.Background(), &Message{ChatID: testChatID, UserID: testUserID, Text: "hello"})
	require.NoError(t, err)

	msg, ok := tb.bot.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, render.MsgUseButtons, msg.Text)
}

func TestCallbackHandler_FullQuestionnaire(t *testing.T) {
	tb := newTestBot(t)
	questions := entity.Questions()
	chosen := answers()

	tb.press(t, keyboard.EncodeCallback(keyboard.ActionControl, keyboard.ControlStart))
	first, ok := tb.bot.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Contains(t, first.Text, questions[0].Text)

	for i, q := range questions {
		tb.press(t, keyboard.EncodeOption(q.ID, chosen[q.ID]))
		assert.Equal(t, render.CbSelected, tb.bot.lastCallbackText())

		if i == len(questions)-1 {
			break
		}
		next := questions[i+1].Text
		require.Eventually(t, func() bool {
			return strings.Contains(tb.bot.lastEditText(), next)
		}, time.Second, time.Millisecond)
	}

	tb.press(t, keyboard.EncodeCallback(keyboard.ActionControl, keyboard.ControlSubmit))
	assert.Contains(t, tb.bot.lastEditText(), "Cavalier King Charles Spaniel")

	tb.press(t, keyboard.EncodeCallback(keyboard.ActionDownload, string(entity.FormatMarkdown)))
	docs := tb.bot.documents()
	require.Len(t, docs, 1)
	file, ok := docs[0].File.(tgbotapi.FileBytes)
	require.True(t, ok)
	assert.Equal(t, "puppy-match.md", file.Name)
	assert.Contains(t, string(file.Bytes), "Cavalier King Charles Spaniel")
}

func TestCallbackHandler_StaleButton(t *testing.T) {
	tb := newTestBot(t)
	questions := entity.Questions()

	tb.press(t, keyboard.EncodeCallback(keyboard.ActionControl, keyboard.ControlStart))
	tb.press(t, keyboard.EncodeOption(questions[0].ID, "low"))
	require.Eventually(t, func() bool {
		return strings.Contains(tb.bot.lastEditText(), questions[1].Text)
	}, time.Second, time.Millisecond)

	tb.press(t, keyboard.EncodeOption(questions[0].ID, "high"))
	assert.Equal(t, render.CbStaleButton, tb.bot.lastCallbackText())
}

func TestCallbackHandler_BackKeepsAnswer(t *testing.T) {
	tb := newTestBot(t)
	questions := entity.Questions()

	tb.press(t, keyboard.EncodeCallback(keyboard.ActionControl, keyboard.ControlStart))
	tb.press(t, keyboard.EncodeOption(questions[0].ID, "moderate"))
	require.Eventually(t, func() bool {
		return strings.Contains(tb.bot.lastEditText(), questions[1].Text)
	}, time.Second, time.Millisecond)

	tb.press(t, keyboard.EncodeCallback(keyboard.ActionControl, keyboard.ControlBack))
	assert.Contains(t, tb.bot.lastEditText(), questions[0].Text)
}

func TestCallbackHandler_SubmitNotReady(t *testing.T) {
	tb := newTestBot(t)

	tb.press(t, keyboard.EncodeCallback(keyboard.ActionControl, keyboard.ControlStart))
	tb.press(t, keyboard.EncodeCallback(keyboard.ActionControl, keyboard.ControlSubmit))

	assert.Equal(t, render.CbNotAvailable, tb.bot.lastCallbackText())
	assert.Empty(t, tb.bot.lastEditText())
}

func TestCallbackHandler_NoSession(t *testing.T) {
	tb := newTestBot(t)

	tb.press(t, keyboard.EncodeCallback(keyboard.ActionControl, keyboard.ControlBack))

	msg, ok := tb.bot.sent[len(tb.bot.sent)-1].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, render.ErrSessionNotFound, msg.Text)
}

func TestCallbackHandler_MalformedData(t *testing.T) {
	tb := newTestBot(t)

	err := tb.callback.Handle(context.Background(), &Message{
		ChatID:       testChatID,
		UserID:       testUserID,
		CallbackData: "garbage",
		CallbackID:   "cb",
	})
	assert.Error(t, err)
	assert.Equal(t, render.CbNotAvailable, tb.bot.lastCallbackText())
}

func TestCallbackHandler_SubmitLogsFailedEdits(t *testing.T) {
	tb := newTestBot(t)
	tb.answerAll(t)

	core, logs := observer.New(zap.WarnLevel)
	ctx := ctxzap.ToContext(context.Background(), zap.New(core))

	tb.bot.setFailEdits(true)
	err := tb.pressCtx(ctx, keyboard.EncodeCallback(keyboard.ActionControl, keyboard.ControlSubmit))
	assert.Error(t, err, "the result screen could not be drawn")

	notices := logs.FilterMessage("failed to show analysing notice").All()
	require.Len(t, notices, 1)
	assert.Equal(t, "tg:7", notices[0].ContextMap()["session_id"])
}

func TestFlow_ForgetsChatWhenSessionIsGone(t *testing.T) {
	tb := newTestBot(t)

	tb.press(t, keyboard.EncodeCallback(keyboard.ActionControl, keyboard.ControlStart))
	require.Equal(t, 1, tb.tracked())

	require.NoError(t, tb.repo.DeleteSession(context.Background(), SessionID(testUserID)))
	err := tb.flow.Show(context.Background(), testChatID, testMessageID, testUserID)
	require.ErrorIs(t, err, entity.ErrSessionNotFound)
	assert.Equal(t, 0, tb.tracked())
}

func TestCallbackHandler_ForgetsChatOnExpiredSession(t *testing.T) {
	tb := newTestBot(t)

	tb.press(t, keyboard.EncodeCallback(keyboard.ActionControl, keyboard.ControlStart))
	require.NoError(t, tb.repo.DeleteSession(context.Background(), SessionID(testUserID)))

	tb.press(t, keyboard.EncodeCallback(keyboard.ActionControl, keyboard.ControlBack))
	assert.Equal(t, 0, tb.tracked())

	msg, ok := tb.bot.sent[len(tb.bot.sent)-1].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, render.ErrSessionNotFound, msg.Text)
}

func TestStartTyping_StopWaitsForGoroutine(t *testing.T) {
	// Session cache janitors from other tests live until garbage collection
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	bot := &fakeBot{}
	stop := startTyping(context.Background(), bot, testChatID, zap.NewNop())
	stop()

	require.Len(t, bot.requests, 1)
	action, ok := bot.requests[0].(tgbotapi.ChatActionConfig)
	require.True(t, ok)
	assert.Equal(t, tgbotapi.ChatTyping, action.Action)
}
