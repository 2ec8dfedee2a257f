package predict

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrEndpointNotAllowed is wrapped by every endpoint policy rejection.
var ErrEndpointNotAllowed = errors.New("prediction endpoint is not allowed")

// EndpointPolicy decides which endpoints a client may post to. The zero
// value accepts any http or https URL.
type EndpointPolicy struct {
	restricted bool
	rules      []endpointRule
}

type endpointRule struct {
	scheme string
	host   string
	path   string
}

// AllowOnly returns a policy that accepts endpoints matching one of entries.
// An entry is either a URL prefix such as "https://ml.internal/predict" or a
// bare host[:port], which accepts any http or https path on that host. An
// empty entries list rejects every endpoint.
func AllowOnly(entries ...string) (EndpointPolicy, error) {
	policy := EndpointPolicy{restricted: true}
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		rule, err := parseRule(entry)
		if err != nil {
			return EndpointPolicy{}, err
		}
		policy.rules = append(policy.rules, rule)
	}
	return policy, nil
}

// Check returns nil when endpoint may be called.
func (p EndpointPolicy) Check(endpoint string) error {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return fmt.Errorf("%w: malformed URL", ErrEndpointNotAllowed)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("%w: only http and https are supported", ErrEndpointNotAllowed)
	}
	if u.Host == "" || u.User != nil {
		return fmt.Errorf("%w: missing host", ErrEndpointNotAllowed)
	}
	if !p.restricted {
		return nil
	}
	for _, rule := range p.rules {
		if rule.matches(scheme, u) {
			return nil
		}
	}
	return ErrEndpointNotAllowed
}

func parseRule(entry string) (endpointRule, error) {
	if !strings.Contains(entry, "://") {
		if strings.ContainsAny(entry, "/?#@") {
			return endpointRule{}, fmt.Errorf("predict: allowed endpoint %q: expected host[:port] or URL", entry)
		}
		return endpointRule{host: strings.ToLower(entry)}, nil
	}

	u, err := url.Parse(entry)
	if err != nil {
		return endpointRule{}, fmt.Errorf("predict: allowed endpoint %q: %w", entry, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return endpointRule{}, fmt.Errorf("predict: allowed endpoint %q: scheme must be http or https", entry)
	}
	if u.Host == "" || u.User != nil {
		return endpointRule{}, fmt.Errorf("predict: allowed endpoint %q: missing host", entry)
	}
	return endpointRule{
		scheme: scheme,
		host:   strings.ToLower(u.Host),
		path:   u.EscapedPath(),
	}, nil
}

func (r endpointRule) matches(scheme string, u *url.URL) bool {
	if r.scheme != "" && r.scheme != scheme {
		return false
	}
	if r.host != strings.ToLower(u.Host) {
		return false
	}
	if r.path == "" || r.path == "/" {
		return true
	}
	if hasDotSegment(u.Path) {
		return false
	}
	path := u.EscapedPath()
	if path == r.path {
		return true
	}
	prefix := r.path
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(path, prefix)
}

func hasDotSegment(path string) bool {
	for _, segment := range strings.Split(path, "/") {
		if segment == "." || segment == ".." {
			return true
		}
	}
	return false
}
