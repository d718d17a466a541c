// Package prompt holds the fixed prompt templates sent to the language model
// and renders them with caller-supplied parameters.
package prompt

import (
	"fmt"
	"regexp"
)

// placeholderRe matches {name} tokens inside a template.
var placeholderRe = regexp.MustCompile(`\{([a-z_]+)\}`)

// MissingParameterError is returned when a template placeholder has no
// matching entry in the render parameters. It signals a broken call site,
// not a runtime condition.
type MissingParameterError struct {
	Template string
	Param    string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("template %q: missing parameter %q", e.Template, e.Param)
}

// Render substitutes params into the named template and returns the final
// prompt string. Parameter values are inserted verbatim; no escaping is
// applied and values are never re-scanned for placeholders. If any
// placeholder is unmatched the template is not rendered at all.
func Render(name string, params map[string]string) (string, error) {
	tpl, ok := templates[name]
	if !ok {
		return "", fmt.Errorf("unknown template %q", name)
	}
	for _, m := range placeholderRe.FindAllStringSubmatch(tpl, -1) {
		if _, ok := params[m[1]]; !ok {
			return "", &MissingParameterError{Template: name, Param: m[1]}
		}
	}
	out := placeholderRe.ReplaceAllStringFunc(tpl, func(tok string) string {
		return params[tok[1:len(tok)-1]]
	})
	return out, nil
}

// Names returns the recognized template names.
func Names() []string {
	return []string{TemplatePatientAnalysis, TemplateDoctorQuestions, TemplateEmergencyProtocol}
}
