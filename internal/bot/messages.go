package bot

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"hydro-bot/internal/models"
	"hydro-bot/internal/tracker"
)

const startText = "Привет! Я помогу вам отслеживать потребление воды и калорий. " +
	"Используйте /set_profile для настройки профиля."

const helpText = `Список доступных команд:

/start - Начать работу с ботом.
/set_profile - Настроить профиль (вес, рост, возраст, активность, город).
/log_water <количество> - Записать количество выпитой воды (в мл).
/log_food <название продукта> - Записать потребление пищи.
/log_workout <тип тренировки> <время (мин)> - Записать тренировку.
/check_progress - Проверить текущий прогресс по воде и калориям.
/show_graph [ГГГГ-ММ-ДД] - Вывести графики с потреблением воды и калорий.
/recommend - Рекомендации по поведению относительно текущих показателей.
/export - Выгрузить журналы воды и еды в Excel.
/cancel - Отменить ввод профиля или ожидание веса продукта.
/help - Показать это сообщение с описанием команд.`

const (
	notConfiguredText = "Сначала настройте профиль с помощью /set_profile."
	internalErrorText = "Произошла ошибка. Попробуйте позже."
	weatherErrorText  = "Не удалось получить данные о погоде. Попробуйте позже."
	foodErrorText     = "Не удалось выполнить поиск продукта. Попробуйте позже."
	cancelledText     = "Действие отменено."
	nothingToCancel   = "Нечего отменять."
)

var stepPrompts = map[models.DialogStep]string{
	models.StepWeight:   "Введите ваш вес (в кг):",
	models.StepHeight:   "Введите ваш рост (в см):",
	models.StepAge:      "Введите ваш возраст:",
	models.StepActivity: "Сколько минут активности у вас в день?",
	models.StepCity:     "В каком городе вы находитесь? (en)",
}

var adviceTexts = map[tracker.Advice]string{
	tracker.AdviceDrinkWater:  "Вы выпили недостаточно воды. Рекомендуем выпить еще стакан чистой воды.",
	tracker.AdviceEatLess:     "Ваш рацион превышает дневную норму калорий. Попробуйте выбрать легкие блюда (например, овощной салат или суп), чтобы немного снизить потребление калорий.",
	tracker.AdviceEatMore:     "Вы потребляете меньше калорий, чем требуется. Убедитесь, что получаете достаточное количество питательных веществ.",
	tracker.AdviceHighBalance: "Ваш калорийный баланс довольно высок. Рекомендуем выполнить 30 минут кардио (например, бег или быструю ходьбу) для повышения расхода калорий.",
	tracker.AdviceMoveMore:    "Добавьте физической активности в свой день. Например, попробуйте 20–30 минут йоги или легкой зарядки.",
	tracker.AdviceAllGood:     "Отлично! Вы хорошо соблюдаете свои нормы.",
}

// num печатает число без лишних нулей: 3600, 2043.75
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func workoutList(names []string) string {
	lines := make([]string, len(names))
	for i, n := range names {
		lines[i] = "- " + n
	}
	return strings.Join(lines, "\n")
}

func validationText(e *tracker.ValidationError) string {
	switch e.Field {
	case string(models.StepWeight):
		return "Пожалуйста, введите корректное число для веса."
	case string(models.StepHeight):
		return "Пожалуйста, введите корректное число для роста."
	case string(models.StepAge):
		return "Пожалуйста, введите корректное число для возраста."
	case string(models.StepActivity):
		return "Пожалуйста, введите корректное число для активности."
	case string(models.StepCity):
		return "Пожалуйста, введите название города."
	case "amount":
		return "Используйте формат: /log_water <количество>"
	case "query":
		return "Используйте формат: /log_food <название продукта>"
	case "grams":
		return "Пожалуйста, введите корректное число для количества грамм."
	case "workout":
		return "Используйте формат: /log_workout <тип тренировки> <время (мин)>.\n\n" +
			"Доступные виды тренировок:\n" + workoutList(e.Options)
	case "minutes":
		return "Пожалуйста, введите корректное число для времени в минутах.\nПример: /log_workout бег 30"
	case "date":
		return "Используйте формат: /show_graph [ГГГГ-ММ-ДД]"
	}
	return internalErrorText
}

func profileDoneText(g *models.Goals) string {
	return fmt.Sprintf("Настройка завершена!\nВаша норма воды: %s мл\nВаша норма калорий: %s ккал",
		num(g.WaterML), num(g.CalorieKcal))
}

func waterText(r *tracker.WaterLogged) string {
	return fmt.Sprintf("Добавлено %d мл воды.\nОсталось выпить: %s мл.", r.Amount, num(r.Remaining))
}

func foodPromptText(p *tracker.FoodPrompt) string {
	return fmt.Sprintf("🍴 %s — %s ккал на 100 г. Сколько грамм вы съели?", p.Name, num(p.CaloriesPer100g))
}

func foodLoggedText(f *tracker.FoodLogged) string {
	return fmt.Sprintf("Записано: %.1f ккал (%s г %s).", f.Calories, num(f.Grams), f.Name)
}

func workoutText(w *tracker.WorkoutLogged) string {
	text := fmt.Sprintf("%s %s %d мин — %s ккал.\n", w.Workout.Emoji, capitalize(w.Workout.Name), w.Minutes, num(w.Burned))
	if w.ExtraWater > 0 {
		return text + fmt.Sprintf("Дополнительно: выпейте %d мл воды.", w.ExtraWater)
	}
	return text + "Хорошая работа!"
}

func progressText(p *tracker.Progress) string {
	return fmt.Sprintf("📊 Прогресс:\n"+
		"Вода:\n"+
		"- Выпито: %d мл из %s мл.\n"+
		"- Осталось: %s мл.\n"+
		"Калории:\n"+
		"- Потреблено: %s ккал из %s ккал.\n"+
		"- Сожжено: %s ккал.\n"+
		"- Баланс: %s ккал.",
		p.LoggedWater, num(p.WaterGoal), num(p.RemainingWater),
		num(p.LoggedCalories), num(p.CalorieGoal), num(p.BurnedCalories), num(p.CalorieBalance))
}

func recommendText(advice []tracker.Advice) string {
	lines := make([]string, 0, len(advice))
	for _, a := range advice {
		lines = append(lines, adviceTexts[a])
	}
	return strings.Join(lines, "\n")
}
