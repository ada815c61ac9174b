package httpserver

import (
	"html/template"
	"io"

	"damq_travel/internal/domain"
)

// Admin list fragments are rendered server-side and swapped into the
// back-office page wholesale after every reload, so the markup here is
// the single source of truth for row layout.

var tourListTmpl = template.Must(template.New("tours").Funcs(template.FuncMap{
	"imgsrc": func(t domain.Tour) string { return t.DisplayImageURL() },
}).Parse(`{{if not .Items}}<div class="empty-state">Пока нет записей.</div>{{else}}{{range .Items}}<div class="admin-item" data-id="{{.ID}}">
  <img src="{{imgsrc .}}" alt="" width="80" height="60">
  <div class="admin-item-body">
    <strong>{{.Title}}</strong>
    <span class="muted">{{.Duration}}{{if .Price}} &middot; {{.Price}}{{end}}</span>
    {{if not .Active}}<span class="tag tag-off">скрыт</span>{{end}}
    {{if .Featured}}<span class="tag tag-star">featured</span>{{end}}
  </div>
  <div class="admin-item-actions">
    <button type="button" data-action="edit" data-id="{{.ID}}">Редактировать</button>
    <button type="button" data-action="delete" data-id="{{.ID}}">Удалить</button>
  </div>
</div>
{{end}}{{end}}`))

var reviewListTmpl = template.Must(template.New("reviews").Parse(`{{if not .Items}}<div class="empty-state">Пока нет отзывов.</div>{{else}}{{range .Items}}<div class="admin-item" data-id="{{.ID}}">
  <div class="review-avatar">{{.Initials}}</div>
  <div class="admin-item-body">
    <strong>{{.FirstName}} {{.LastName}}</strong>
    <span class="muted">{{.Country}} &middot; {{.Rating}}/5</span>
    <p>{{.Text}}</p>
    {{if not .Approved}}<span class="tag tag-off">на модерации</span>{{end}}
  </div>
  <div class="admin-item-actions">
    {{if .Approved}}<button type="button" data-action="hide" data-id="{{.ID}}">Скрыть</button>
    {{else}}<button type="button" data-action="approve" data-id="{{.ID}}">Одобрить</button>{{end}}
    <button type="button" data-action="delete" data-id="{{.ID}}">Удалить</button>
  </div>
</div>
{{end}}{{end}}`))

func renderTourList(w io.Writer, items []domain.Tour) error {
	return tourListTmpl.Execute(w, map[string]any{"Items": items})
}

func renderReviewList(w io.Writer, items []domain.Review) error {
	return reviewListTmpl.Execute(w, map[string]any{"Items": items})
}
