package validation

import (
	"regexp"
	"slices"
	"strings"
)

var (
	irrSeparator = regexp.MustCompile(`[\s,]+`)
	irrObject    = regexp.MustCompile(`^(AS-|RS-|AS\d+)[A-Z0-9-]*$`)
	irrSource    = regexp.MustCompile(`^[A-Z0-9]+(-[A-Z0-9]+)*$`)
)

// ValidateIRRAsSet normalises a list of IRR AS-SET / route-set references.
// Accepted forms per token are SOURCE::NAME and NAME@SOURCE, or a bare NAME;
// NAME may be hierarchical (AS123:AS-FOO:AS456). Tokens are separated by
// whitespace or commas and re-joined with single spaces, upper-cased.
func ValidateIRRAsSet(vc Context, value string) (string, error) {
	if vc.Bypass() {
		return value, nil
	}

	tokens := irrSeparator.Split(strings.TrimSpace(value), -1)
	validated := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token == "" {
			continue
		}
		normalized, err := validateIRRToken(vc, token)
		if err != nil {
			return "", err
		}
		validated = append(validated, normalized)
	}

	return strings.Join(validated, " "), nil
}

func validateIRRToken(vc Context, raw string) (string, error) {
	token := strings.ToUpper(raw)

	var (
		source    string
		name      string
		hasSource bool
		atForm    bool
	)
	switch {
	case strings.Contains(token, "::"):
		source, name, _ = strings.Cut(token, "::")
		hasSource = true
	case strings.Contains(token, "@"):
		name, source, _ = strings.Cut(token, "@")
		hasSource, atForm = true, true
	default:
		name = token
	}

	if hasSource {
		if !irrSource.MatchString(source) || !slices.Contains(vc.Rules.IRRSources, source) {
			return "", newFieldError("irr_as_set", raw, ErrInvalidIRRReference, "Unknown IRR source: %s", source)
		}
	}

	parts := strings.Split(name, ":")
	if len(parts) > vc.Rules.MaxIRRDepth {
		return "", newFieldError("irr_as_set", raw, ErrIRRDepthExceeded,
			"Maximum AS-SET nesting depth of %d exceeded: %s", vc.Rules.MaxIRRDepth, raw)
	}

	var setKind string
	for _, part := range parts {
		if !irrObject.MatchString(part) {
			return "", newFieldError("irr_as_set", raw, ErrInvalidIRRReference, "Invalid IRR object name: %s", raw)
		}
		kind := setKindOf(part)
		if kind == "" {
			continue
		}
		if setKind != "" && kind != setKind {
			return "", newFieldError("irr_as_set", raw, ErrInvalidIRRReference,
				"Hierarchical IRR name mixes %s and %s components: %s", setKind, kind, raw)
		}
		setKind = kind
	}

	switch {
	case !hasSource:
		return name, nil
	case atForm:
		return name + "@" + source, nil
	default:
		return source + "::" + name, nil
	}
}

// setKindOf classifies a name component: "AS-" and "RS-" are set names,
// anything else is an AS number.
func setKindOf(part string) string {
	switch {
	case strings.HasPrefix(part, "AS-"):
		return "AS-"
	case strings.HasPrefix(part, "RS-"):
		return "RS-"
	default:
		return ""
	}
}
