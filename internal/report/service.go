// Package report renders a session's consultation history to PDF and
// forwards urgent cases to an on-call doctor.
package report

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/signintech/gopdf"

	"davis-triage/internal/session"
	"davis-triage/internal/triage"
)

type TelegramClient interface {
	SendMessage(chatID int64, text string) error
	SendDocument(chatID int64, fileData []byte, fileName string) error
}

type Service struct {
	tgClient     TelegramClient
	doctorChatID int64
}

// NewService builds the report service. tgClient may be nil when no doctor
// notification channel is configured; Build still works, NotifyUrgent
// becomes a logged no-op.
func NewService(tg TelegramClient, doctorChatID int64) *Service {
	return &Service{
		tgClient:     tg,
		doctorChatID: doctorChatID,
	}
}

// fontPaths lists common DejaVuSans locations. DejaVu carries the Arabic
// block needed for Persian text.
var fontPaths = []string{
	"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

// Build renders the consultation history to a PDF document.
func (s *Service) Build(entries []session.ConsultationEntry) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	var fontErr error
	fontLoaded := false
	for _, path := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return nil, fmt.Errorf("failed to load font for PDF, ensure ttf-dejavu is installed: %w", fontErr)
	}

	if err := pdf.SetFont("DejaVu", "", 20); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "گزارش مشاوره پزشکی (Davis Triage)")
	pdf.Br(30)

	if err := pdf.SetFont("DejaVu", "", 12); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("تاریخ: %s", time.Now().Format("02.01.2006 15:04")))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("تعداد مشاورات: %d", len(entries)))
	pdf.Br(25)

	for i, e := range entries {
		if err := pdf.SetFont("DejaVu", "", 14); err != nil {
			return nil, err
		}
		header := fmt.Sprintf("مشاوره #%d — %s (%s)", i+1, e.Timestamp.Format("2006-01-02 15:04:05"), e.Role)
		pdf.Cell(nil, header)
		pdf.Br(15)

		if err := pdf.SetFont("DejaVu", "", 11); err != nil {
			return nil, err
		}
		writeWrapped(&pdf, "علائم: "+e.Symptoms)
		pdf.Br(5)
		writeWrapped(&pdf, "تحلیل: "+e.Analysis)

		if code := triage.Classify(e.Analysis); code != triage.CodeUnknown {
			pdf.Cell(nil, fmt.Sprintf("طبقه‌بندی فوریت: %s", code))
			pdf.Br(12)
		}
		pdf.Br(15)
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func writeWrapped(pdf *gopdf.GoPdf, text string) {
	lines, _ := pdf.SplitText(text, 500)
	for _, l := range lines {
		pdf.Cell(nil, l)
		pdf.Br(12)
	}
}

// NotifyUrgent forwards an urgent consultation to the doctor chat: a short
// alert message plus the single-entry report as a document.
func (s *Service) NotifyUrgent(ctx context.Context, entry session.ConsultationEntry) error {
	if s.tgClient == nil || s.doctorChatID == 0 {
		log.Println("urgent consultation detected but no doctor channel configured")
		return nil
	}

	alert := fmt.Sprintf("🚨 مشاوره فوری (%s)\n\nعلائم: %s", entry.Timestamp.Format("2006-01-02 15:04:05"), entry.Symptoms)
	if err := s.tgClient.SendMessage(s.doctorChatID, alert); err != nil {
		return fmt.Errorf("failed to send alert: %w", err)
	}

	pdf, err := s.Build([]session.ConsultationEntry{entry})
	if err != nil {
		return err
	}
	fileName := fmt.Sprintf("urgent_%s.pdf", entry.Timestamp.Format("20060102_150405"))
	if err := s.tgClient.SendDocument(s.doctorChatID, pdf, fileName); err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}
	return nil
}
