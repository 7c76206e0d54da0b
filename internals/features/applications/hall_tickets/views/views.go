package views

import (
	"bytes"
	"embed"
	"net/http"
	"strings"

	"hallticket_backend/internals/features/applications/hall_tickets/model"

	"github.com/gofiber/template/html/v2"
)

//go:embed *.html
var files embed.FS

// PrintView: data untuk template print.html.
type PrintView struct {
	Title       string
	Centre      string
	UniqueID    string
	ProgramCode string
	Name        string
	DateOfBirth string
	Zone        string
	Membership  string
	PhotoURL    string
	IssuedAt    string
	Reference   string
}

func NewPrintView(t *model.HallTicketModel) PrintView {
	return PrintView{
		Title:       "ENTRANCE EXAMINATION HALL TICKET",
		Centre:      t.HallTicketCentre,
		UniqueID:    t.HallTicketUniqueID,
		ProgramCode: t.HallTicketProgramCode,
		Name:        strings.ToUpper(t.HallTicketName),
		DateOfBirth: t.HallTicketDateOfBirth,
		Zone:        t.HallTicketZone,
		Membership:  t.HallTicketMembershipID,
		PhotoURL:    t.HallTicketPhotoURL,
		IssuedAt:    t.HallTicketIssuedAt.Format("02 Jan 2006"),
		Reference:   "REF: AI/EEP/" + t.HallTicketIssuedAt.Format("2006") + "/" + t.HallTicketUniqueID,
	}
}

type Renderer struct {
	engine *html.Engine
}

// NewRenderer memuat template dari embed FS (tidak bergantung working dir).
func NewRenderer() (*Renderer, error) {
	engine := html.NewFileSystem(http.FS(files), ".html")
	if err := engine.Load(); err != nil {
		return nil, err
	}
	return &Renderer{engine: engine}, nil
}

// RenderTicket merender ke buffer; status tiket baru diubah setelah render sukses.
func (r *Renderer) RenderTicket(t *model.HallTicketModel) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.engine.Render(&buf, "print", NewPrintView(t)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
