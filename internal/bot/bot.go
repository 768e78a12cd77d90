package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hydro-bot/internal/chart"
	"hydro-bot/internal/config"
	"hydro-bot/internal/export"
	"hydro-bot/internal/logger"
	"hydro-bot/internal/metrics"
	"hydro-bot/internal/models"
	"hydro-bot/internal/tracker"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// telegramAPI - часть tgbotapi.BotAPI, которой пользуется бот
type telegramAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	api     telegramAPI
	tracker *tracker.Tracker
	logger  logger.Logger
	config  *config.Config
	metrics *metrics.Metrics
}

func New(cfg *config.Config, tr *tracker.Tracker, m *metrics.Metrics, log logger.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.APIToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	log.Infof("Authorized on account %s", api.Self.UserName)

	return newBot(api, cfg, tr, m, log), nil
}

func newBot(api telegramAPI, cfg *config.Config, tr *tracker.Tracker, m *metrics.Metrics, log logger.Logger) *Bot {
	return &Bot{
		api:     api,
		tracker: tr,
		logger:  log,
		config:  cfg,
		metrics: m,
	}
}

func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting bot...")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return errors.New("updates channel closed")
			}
			go b.handleUpdate(ctx, update)
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("Bot stopped")
			return nil
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	msg := update.Message
	b.logger.Debugf("Received message from %d: %s", msg.From.ID, msg.Text)

	// Обрабатываем команды
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	// Обрабатываем обычные сообщения
	b.handleMessage(ctx, msg)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	command := msg.Command()
	args := msg.CommandArguments()

	started := time.Now()

	switch command {
	case "start":
		b.reply(msg.Chat.ID, startText, "start")
	case "help":
		b.reply(msg.Chat.ID, helpText, "help")
	case "set_profile":
		b.handleSetProfile(ctx, msg)
	case "log_water":
		b.handleLogWater(ctx, msg, args)
	case "log_food":
		b.handleLogFood(ctx, msg, args)
	case "log_workout":
		b.handleLogWorkout(ctx, msg, args)
	case "check_progress":
		b.handleCheckProgress(ctx, msg)
	case "recommend":
		b.handleRecommend(ctx, msg)
	case "show_graph":
		b.handleShowGraph(ctx, msg, args)
	case "export":
		b.handleExport(ctx, msg)
	case "cancel":
		b.handleCancel(ctx, msg)
	case "stats":
		b.handleStats(ctx, msg)
	default:
		b.logger.Warnf("Unknown command: %s", command)
		return
	}
	b.metrics.CommandsProcessed.WithLabelValues(command).Inc()
	b.metrics.CommandDuration.WithLabelValues(command).Observe(time.Since(started).Seconds())
}

// handleMessage передаёт свободный текст диспетчеру трекера
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Text == "" {
		return
	}
	b.metrics.MessagesProcessed.Inc()

	res, err := b.tracker.HandleText(ctx, msg.From.ID, msg.Text)
	if err != nil {
		b.replyError(msg, err)
		return
	}

	switch res.Kind {
	case tracker.TextFood:
		b.reply(msg.Chat.ID, foodLoggedText(res.Food), "food logged")
	case tracker.TextProfile:
		b.replyProfileStep(ctx, msg, res.Profile)
	default:
		b.logger.Debugf("Ignored text from %d", msg.From.ID)
	}
}

func (b *Bot) handleSetProfile(ctx context.Context, msg *tgbotapi.Message) {
	if err := b.tracker.BeginProfile(ctx, msg.From.ID); err != nil {
		b.replyError(msg, err)
		return
	}
	b.reply(msg.Chat.ID, stepPrompts[models.StepWeight], "profile prompt")
}

func (b *Bot) replyProfileStep(ctx context.Context, msg *tgbotapi.Message, p *tracker.ProfileProgress) {
	if p.Goals != nil {
		b.metrics.ProfilesCompleted.Inc()
		b.metrics.LookupsTotal.WithLabelValues("weather", "ok").Inc()
		b.refreshUsers(ctx)
		b.reply(msg.Chat.ID, profileDoneText(p.Goals), "profile done")
		return
	}
	b.reply(msg.Chat.ID, stepPrompts[p.Step], "profile prompt")
}

func (b *Bot) handleLogWater(ctx context.Context, msg *tgbotapi.Message, args string) {
	amount := ""
	if fields := strings.Fields(args); len(fields) > 0 {
		amount = fields[0]
	}
	res, err := b.tracker.LogWater(ctx, msg.From.ID, amount)
	if err != nil {
		b.replyError(msg, err)
		return
	}
	b.reply(msg.Chat.ID, waterText(res), "log water")
}

func (b *Bot) handleLogFood(ctx context.Context, msg *tgbotapi.Message, args string) {
	query := strings.Join(strings.Fields(args), " ")
	prompt, err := b.tracker.LogFoodStart(ctx, msg.From.ID, query)
	if err != nil {
		b.replyError(msg, err)
		return
	}
	b.metrics.LookupsTotal.WithLabelValues("food", "ok").Inc()
	b.reply(msg.Chat.ID, foodPromptText(prompt), "food prompt")
}

func (b *Bot) handleLogWorkout(ctx context.Context, msg *tgbotapi.Message, args string) {
	var workoutType, minutes string
	if fields := strings.Fields(args); len(fields) >= 2 {
		workoutType, minutes = fields[0], fields[1]
	}
	res, err := b.tracker.LogWorkout(ctx, msg.From.ID, workoutType, minutes)
	if err != nil {
		b.replyError(msg, err)
		return
	}
	b.reply(msg.Chat.ID, workoutText(res), "log workout")
}

func (b *Bot) handleCheckProgress(ctx context.Context, msg *tgbotapi.Message) {
	p, err := b.tracker.CheckProgress(ctx, msg.From.ID)
	if err != nil {
		b.replyError(msg, err)
		return
	}
	b.reply(msg.Chat.ID, progressText(p), "progress")
}

func (b *Bot) handleRecommend(ctx context.Context, msg *tgbotapi.Message) {
	advice, err := b.tracker.Recommend(ctx, msg.From.ID)
	if err != nil {
		b.replyError(msg, err)
		return
	}
	b.reply(msg.Chat.ID, recommendText(advice), "recommend")
}

// handleShowGraph строит график за дату из аргумента или за сегодня
func (b *Bot) handleShowGraph(ctx context.Context, msg *tgbotapi.Message, args string) {
	clock := b.tracker.Clock()
	date := clock.Today()
	if fields := strings.Fields(args); len(fields) > 0 {
		date = fields[0]
	}

	series, err := b.tracker.TimeSeries(ctx, msg.From.ID, date)
	if err != nil {
		b.replyError(msg, err)
		return
	}
	if series.Empty() {
		b.reply(msg.Chat.ID, fmt.Sprintf("Данных для даты %s нет.", date), "no data")
		return
	}

	caption := fmt.Sprintf("Прогресс за %s", date)
	img, err := chart.RenderProgress(caption, series, clock.Location())
	if err != nil {
		b.logger.Errorf("Failed to render chart for %d: %v", msg.From.ID, err)
		b.reply(msg.Chat.ID, internalErrorText, "error")
		return
	}

	photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{Name: "progress.png", Bytes: img})
	photo.Caption = caption
	b.send(photo, msg.Chat.ID, "graph")
}

func (b *Bot) handleExport(ctx context.Context, msg *tgbotapi.Message) {
	rec, err := b.tracker.Snapshot(ctx, msg.From.ID)
	if err != nil {
		b.replyError(msg, err)
		return
	}

	clock := b.tracker.Clock()
	data, err := export.Workbook(rec, clock.Location())
	if err != nil {
		b.logger.Errorf("Failed to export logs for %d: %v", msg.From.ID, err)
		b.reply(msg.Chat.ID, internalErrorText, "error")
		return
	}

	doc := tgbotapi.NewDocument(msg.Chat.ID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("hydro_%s.xlsx", clock.Today()),
		Bytes: data,
	})
	doc.Caption = "Журналы воды и еды"
	b.send(doc, msg.Chat.ID, "export")
}

func (b *Bot) handleCancel(ctx context.Context, msg *tgbotapi.Message) {
	res, err := b.tracker.Cancel(ctx, msg.From.ID)
	if err != nil {
		b.replyError(msg, err)
		return
	}
	if !res.FoodCleared && !res.DialogStopped {
		b.reply(msg.Chat.ID, nothingToCancel, "cancel")
		return
	}
	b.reply(msg.Chat.ID, cancelledText, "cancel")
}

// handleStats доступна только владельцу бота
func (b *Bot) handleStats(ctx context.Context, msg *tgbotapi.Message) {
	if !b.isOwner(msg.From.ID) {
		b.logger.Warnf("User %d tried to use /stats", msg.From.ID)
		return
	}
	n, err := b.tracker.ConfiguredUsers(ctx)
	if err != nil {
		b.replyError(msg, err)
		return
	}
	b.metrics.UsersTotal.Set(float64(n))
	b.reply(msg.Chat.ID, fmt.Sprintf("📊 Пользователей с настроенным профилем: %d", n), "stats")
}

func (b *Bot) isOwner(userID int64) bool {
	return b.config.OwnerID != 0 && b.config.OwnerID == userID
}

func (b *Bot) refreshUsers(ctx context.Context) {
	n, err := b.tracker.ConfiguredUsers(ctx)
	if err != nil {
		b.logger.Errorf("Failed to count users: %v", err)
		return
	}
	b.metrics.UsersTotal.Set(float64(n))
}

// replyError превращает ошибку трекера в сообщение пользователю
func (b *Bot) replyError(msg *tgbotapi.Message, err error) {
	var (
		verr *tracker.ValidationError
		nerr *tracker.NotFoundError
		terr *tracker.TransientError
		uerr *tracker.UnknownOptionError
	)

	kind := "internal"
	text := internalErrorText
	switch {
	case errors.Is(err, tracker.ErrNotConfigured):
		kind, text = "not_configured", notConfiguredText
	case errors.As(err, &verr):
		kind, text = "validation", validationText(verr)
	case errors.As(err, &nerr):
		kind = "not_found"
		b.metrics.LookupsTotal.WithLabelValues("food", "not_found").Inc()
		if nerr.Incomplete {
			text = fmt.Sprintf("Не удалось получить информацию о калориях для '%s'.", nerr.Query)
		} else {
			text = fmt.Sprintf("Продукт '%s' не найден. Попробуйте другой запрос.", nerr.Query)
		}
	case errors.As(err, &terr):
		kind = "transient"
		if terr.Op == "weather lookup" {
			b.metrics.LookupsTotal.WithLabelValues("weather", "error").Inc()
			text = weatherErrorText
		} else {
			b.metrics.LookupsTotal.WithLabelValues("food", "error").Inc()
			text = foodErrorText
		}
	case errors.As(err, &uerr):
		kind = "unknown_option"
		text = fmt.Sprintf("Неизвестный тип тренировки '%s'.\n\nДоступные виды тренировок:\n%s",
			uerr.Value, workoutList(uerr.Options))
	default:
		b.logger.Errorf("Failed to handle message from %d: %v", msg.From.ID, err)
	}

	b.metrics.ErrorsTotal.WithLabelValues(kind).Inc()
	b.reply(msg.Chat.ID, text, kind)
}

func (b *Bot) reply(chatID int64, text, what string) {
	b.send(tgbotapi.NewMessage(chatID, text), chatID, what)
}

func (b *Bot) send(c tgbotapi.Chattable, chatID int64, what string) {
	b.logger.Infof("Sending %s message to chat %d", what, chatID)
	if _, err := b.api.Send(c); err != nil {
		b.logger.Errorf("Failed to send %s message: %v", what, err)
		return
	}
	b.logger.Infof("Successfully sent %s message to chat %d", what, chatID)
}
