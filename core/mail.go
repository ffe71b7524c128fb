package core

import (
	"bytes"
	"fmt"
	htmltmpl "html/template"
	"io/fs"
	"net/mail"
	"path/filepath"
	"strings"
	"sync"
	texttmpl "text/template"

	"github.com/pkg/errors"

	appfs "github.com/engconnect/classtools/fs"
)

var (
	templates tmplCache
	tmplInit  sync.Once
)

type (
	tmplCacheEntry map[string]interface{}    // {ext: *Template}
	tmplCache      map[string]tmplCacheEntry // {name: tmplCacheEntry}

	EmailMessage struct {
		To      []mail.Address
		Subject string
		BodyStr string // simple text/plain, non-templated content

		// templated contents
		TemplateName string // without ext
		TemplateData interface{}
		TextContent  string
		HTMLContent  string
	}

	ContextData struct {
		FrontendBaseURL string
		Data            interface{}
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}
)

// ParseEmailTemplates walks the embedded email template dir and caches parsed
// templates by base name and extension. Call once on app start-up.
func ParseEmailTemplates(logger Logger) {
	tmplInit.Do(func() {
		templates = make(tmplCache)
		err := fs.WalkDir(appfs.Templates, "templates/email", func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			ext := filepath.Ext(path)
			name := strings.TrimSuffix(filepath.Base(path), ext)
			entry, ok := templates[name]
			if !ok {
				entry = make(tmplCacheEntry)
				templates[name] = entry
			}
			switch ext {
			case ".txt":
				t, err := texttmpl.ParseFS(appfs.Templates, path)
				if err != nil {
					return errors.Wrapf(err, "parsing %s", path)
				}
				entry[ext] = t
			case ".html":
				t, err := htmltmpl.ParseFS(appfs.Templates, path)
				if err != nil {
					return errors.Wrapf(err, "parsing %s", path)
				}
				entry[ext] = t
			}
			return nil
		})
		if err != nil {
			logger.Fatal(fmt.Sprintf("parsing email templates: %v", err), err)
		}
	})
}

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }

func (m *EmailMessage) HasContent() bool {
	return m.BodyStr != "" || m.TextContent != "" || m.HTMLContent != ""
}

// Render executes the message's templates (if any) into TextContent/HTMLContent.
func (m *EmailMessage) Render() error {
	if m.TemplateName == "" {
		m.TextContent = m.BodyStr
		return nil
	}
	entry, ok := templates[m.TemplateName]
	if !ok {
		return errors.Errorf("unknown email template %q", m.TemplateName)
	}

	if t, ok := entry[".txt"].(*texttmpl.Template); ok {
		var buf bytes.Buffer
		if err := t.Execute(&buf, m.TemplateData); err != nil {
			return errors.Wrapf(err, "executing %s.txt", m.TemplateName)
		}
		m.TextContent = buf.String()
	}
	if t, ok := entry[".html"].(*htmltmpl.Template); ok {
		var buf bytes.Buffer
		if err := t.Execute(&buf, m.TemplateData); err != nil {
			return errors.Wrapf(err, "executing %s.html", m.TemplateName)
		}
		m.HTMLContent = buf.String()
	}
	return nil
}
