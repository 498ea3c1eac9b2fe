package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/KaramelBytes/datainsights/internal/analysis"
	"github.com/KaramelBytes/datainsights/internal/parser"
)

var allowedExt = map[string]struct{}{".csv": {}, ".xlsx": {}}

// errNoUpload marks a request without a file part.
var errNoUpload = errors.New("no file uploaded")

type chartView struct {
	Title string
	URI   template.URL
	Err   string
}

type chartSection struct {
	Heading string
	Charts  []chartView
}

type pageView struct {
	Pages    []Page
	Page     Page
	Intro    string
	Notice   string
	Error    string
	Accept   string
	Preview  *analysis.Preview
	Sections []chartSection
	NoCharts string
	Insights *analysis.Insights
	Currency string
}

func (s *Server) newView(p Page) *pageView {
	return &pageView{Pages: Pages, Page: p, Intro: p.intro(), Accept: ".csv,.xlsx", Currency: s.cfg.Analysis.Normalize.Currency}
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	p := ParsePage(c.Query("page"))
	v := s.newView(p)
	if p.Uploads() {
		v.Notice = p.noUpload()
	}
	return s.render(c, fiber.StatusOK, v)
}

func (s *Server) handleUpload(c *fiber.Ctx) error {
	p := ParsePage(c.FormValue("page"))
	v := s.newView(p)
	if !p.Uploads() {
		return s.render(c, fiber.StatusOK, v)
	}
	id := uuid.NewString()
	log := s.log.With("upload_id", id, "page", string(p))

	t, err := s.readUpload(c)
	switch {
	case errors.Is(err, errNoUpload):
		v.Notice = p.noUpload()
		return s.render(c, fiber.StatusOK, v)
	case err != nil:
		log.Warn("upload rejected", "err", err)
		v.Error = err.Error()
		return s.render(c, fiber.StatusUnprocessableEntity, v)
	}
	log.Info("upload parsed", "file", t.Name, "rows", t.Rows(), "columns", len(t.Columns))

	switch p {
	case PageAnalytics:
		a := analysis.RunAnalytics(t, s.cfg.Analysis)
		v.Preview = &a.Preview
		if !a.HasCharts() {
			v.NoCharts = analysis.NoNumericNotice
			break
		}
		v.Sections = s.renderPlan(log, t, a.Plan)
	case PageInsights:
		in, err := analysis.RunInsights(t, s.cfg.Analysis)
		if err != nil {
			log.Warn("insights failed", "err", err)
			v.Error = err.Error()
			return s.render(c, fiber.StatusUnprocessableEntity, v)
		}
		v.Preview = &in.Preview
		v.Insights = in
	}
	return s.render(c, fiber.StatusOK, v)
}

// renderPlan draws every chart; a failed chart becomes an inline note.
func (s *Server) renderPlan(log *slog.Logger, t *analysis.Table, plan analysis.Plan) []chartSection {
	draw := func(spec analysis.ChartSpec) chartView {
		img, err := s.renderer.Render(t, spec)
		if err != nil {
			log.Warn("chart failed", "chart", spec.ChartTitle(), "err", err)
			return chartView{Title: spec.ChartTitle(), Err: err.Error()}
		}
		return chartView{Title: img.Title, URI: template.URL(img.DataURI())}
	}
	scatter := chartSection{Heading: "Scatter Plots"}
	for _, sp := range plan.Scatter {
		scatter.Charts = append(scatter.Charts, draw(sp))
	}
	hist := chartSection{Heading: "Histograms"}
	for _, h := range plan.Histograms {
		hist.Charts = append(hist.Charts, draw(h))
	}
	out := []chartSection{scatter, hist}
	if plan.Pairplot != nil {
		out = append(out, chartSection{Heading: "Pairplot", Charts: []chartView{draw(*plan.Pairplot)}})
	}
	return out
}

func (s *Server) handleAPIAnalytics(c *fiber.Ctx) error {
	t, err := s.readUpload(c)
	if err != nil {
		return apiError(c, err)
	}
	a := analysis.RunAnalytics(t, s.cfg.Analysis)
	return c.JSON(a)
}

func (s *Server) handleAPIInsights(c *fiber.Ctx) error {
	t, err := s.readUpload(c)
	if err != nil {
		return apiError(c, err)
	}
	in, err := analysis.RunInsights(t, s.cfg.Analysis)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(in)
}

func apiError(c *fiber.Ctx, err error) error {
	code := fiber.StatusUnprocessableEntity
	if errors.Is(err, errNoUpload) {
		code = fiber.StatusBadRequest
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// readUpload parses the "file" form part.
func (s *Server) readUpload(c *fiber.Ctx) (*analysis.Table, error) {
	fh, err := c.FormFile("file")
	if err != nil || fh.Filename == "" {
		return nil, errNoUpload
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := allowedExt[ext]; !ok {
		return nil, &parser.ParseError{Name: filepath.Base(fh.Filename), Err: fmt.Errorf("%w: %q (use .csv or .xlsx)", parser.ErrUnsupported, ext)}
	}
	return parseHeader(fh)
}

func parseHeader(fh *multipart.FileHeader) (*analysis.Table, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, &parser.ParseError{Name: fh.Filename, Err: err}
	}
	defer f.Close()
	return parser.Parse(fh.Filename, f)
}

func (s *Server) render(c *fiber.Ctx, status int, v *pageView) error {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "page.html", v); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
