package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iamdew/yellostory-lunch/models"
)

// Chat buttons, in keyboard order.
const (
	ButtonToday            = "오늘의 점심 메뉴"
	ButtonTomorrow         = "내일 점심은 뭐지?"
	ButtonDayAfterTomorrow = "모레 점심은 뭐지?"
)

const (
	NoMenuText     = "식단표가 없어요!\n식단표 등록에 힘이 되어주세요!"
	RegisterButton = "식단표 등록해주기"
)

var weekdayGlyphs = [7]string{"일", "월", "화", "수", "목", "금", "토"}

// Keyboard returns the static button keyboard. A fresh value is returned
// each call so callers cannot alter the shared layout.
func Keyboard() models.Keyboard {
	return models.Keyboard{
		Type:    "buttons",
		Buttons: []string{ButtonToday, ButtonTomorrow, ButtonDayAfterTomorrow},
	}
}

// DayForButton maps a button label to the day it asks about.
func DayForButton(content string) (Day, bool) {
	switch content {
	case ButtonToday:
		return Today, true
	case ButtonTomorrow:
		return Tomorrow, true
	case ButtonDayAfterTomorrow:
		return DayAfterTomorrow, true
	}
	return 0, false
}

// FormatKakao renders a menu as chat text:
//
//	3월 8일 (금) / 우리푸드
//
//	김치찌개
//	밥
//
// Blank food lines are dropped. A nil menu renders as "".
func FormatKakao(m *models.LunchMenu) string {
	if m == nil {
		return ""
	}
	date, err := time.Parse(DateLayout, m.Date)
	if err != nil {
		return ""
	}
	subject := fmt.Sprintf("%d월 %d일 (%s)", int(date.Month()), date.Day(), weekdayGlyphs[date.Weekday()])
	if m.Category != "" {
		subject += " / " + m.Category
	}

	var foods []string
	for _, line := range strings.Split(m.Foods, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		foods = append(foods, line)
	}
	return subject + "\n\n" + strings.Join(foods, "\n")
}

// Reply answers a chat button press. When no menu is registered the text
// falls back to the day's event name, then the weekend notice, then a call
// for contributions with a registration link.
//
// Unknown content resolves nothing and gets the contribution message.
func (s *Service) Reply(ctx context.Context, content string) (models.MessageResponse, error) {
	resp := models.MessageResponse{Keyboard: Keyboard()}

	d, ok := DayForButton(content)
	if !ok {
		resp.Message = s.noMenuMessage()
		return resp, nil
	}

	// One clock read per reply, so the lookup and the fallback agree on the date.
	target := s.Date(d)
	lunch, err := s.resolveAt(ctx, target)
	if err != nil {
		return resp, err
	}
	if text := FormatKakao(lunch); text != "" {
		resp.Message = models.Message{Text: text}
		return resp, nil
	}

	if ev, ok := s.events.Lookup(target.Format("2006"), target.Format(DateLayout)); ok {
		resp.Message = models.Message{Text: d.Label() + "은(는) " + ev.Name + "이예요~"}
		return resp, nil
	}
	if wd := target.Weekday(); wd == time.Saturday || wd == time.Sunday {
		resp.Message = models.Message{Text: d.Label() + "은(는) 기다리던 주말!"}
		return resp, nil
	}
	resp.Message = s.noMenuMessage()
	return resp, nil
}

func (s *Service) noMenuMessage() models.Message {
	return models.Message{
		Text: NoMenuText,
		MessageButton: &models.MessageButton{
			Label: RegisterButton,
			URL:   s.registerURL,
		},
	}
}
