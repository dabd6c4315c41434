// Package headers synthesizes rotating, browser-plausible request headers
// and layers per-search-engine anti-bot hints on top, grounded on the
// reference system's WebUtils.get_enhanced_headers and on the colly
// extensions the teacher spider uses for UA/Referer rotation.
package headers

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"net/url"
	mathrand "math/rand/v2"
	"strings"
)

// HttpHeaders is a plain header-name -> header-value map, mirroring the
// reference system's dict-shaped headers rather than net/http.Header's
// multi-value form (callers here only ever pass single values through).
type HttpHeaders map[string]string

// userAgentPool mirrors the shape of colly's extensions.RandomUserAgent table
// and the reference system's RANDOM_USER_AGENTS list.
var userAgentPool = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/134.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/134.0.0.0 Safari/537.36",
}

var acceptLanguagePool = []string{
	"zh-CN,zh;q=0.8",
	"zh-CN,zh;q=0.9,en;q=0.8",
	"en-US,en;q=0.9",
}

// overridable is the set of upstream header names allowed to replace a
// synthesized default; every other upstream header is added as-is when no
// default of that name exists, and never replaces a synthesized one.
var overridable = map[string]bool{
	"User-Agent": true,
	"Cookie":     true,
	"Accept":     true,
	"Referer":    true,
}

// Canonicalize title-cases a hyphenated header name ("user-agent" -> "User-Agent").
func Canonicalize(name string) string {
	parts := strings.Split(strings.ToLower(name), "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "-")
}

func randomFrom(pool []string) string {
	return pool[mathrand.IntN(len(pool))]
}

func randomAlnum(n int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[mathrand.IntN(len(alphabet))]
	}
	return string(b)
}

func randomHex(nBytes int) string {
	buf := make([]byte, nBytes)
	if _, err := rand.Read(buf); err != nil {
		// fall back to a non-crypto source; these are impersonation
		// values, never secrets, so a weaker fallback is acceptable.
		for i := range buf {
			buf[i] = byte(mathrand.IntN(256))
		}
	}
	return hex.EncodeToString(buf)
}

func randomDigits(maxV int64) int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(maxV))
	if err != nil {
		return int64(mathrand.IntN(int(maxV)))
	}
	return n.Int64()
}

func generateCookie() string {
	sessionID := randomAlnum(24)
	token := strings.ToLower(randomHex(16))
	return "session_id=" + sessionID + "; token=" + token
}

// generateBaiduID produces a BAIDUID cookie value in the historical format
// HEX:SL=x:NR=y:FG=z, matching WebUtils.generate_BAIDUID_value.
func generateBaiduID() string {
	hexPart := strings.ToUpper(randomHex(16))
	sl := randomDigits(2)
	nr := randomDigits(999) + 1
	fg := randomDigits(2)
	return hexPart + ":SL=" + itoa(sl) + ":NR=" + itoa(nr) + ":FG=" + itoa(fg)
}

func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func defaultHeaders() HttpHeaders {
	return HttpHeaders{
		"User-Agent":      randomFrom(userAgentPool),
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"Accept-Encoding": "identity",
		"Accept-Language": randomFrom(acceptLanguagePool),
		"Connection":      "keep-alive",
		"Cookie":          generateCookie(),
	}
}

// Enhance builds a rotated, randomized header set and layers in any upstream
// headers plus per-host anti-bot hints, per the header-synthesis algorithm.
func Enhance(rawURL string, upstream HttpHeaders) HttpHeaders {
	out := defaultHeaders()

	for key, value := range upstream {
		canon := Canonicalize(key)
		if overridable[canon] {
			out[canon] = value
			continue
		}
		if _, synthesized := out[canon]; !synthesized {
			out[canon] = value
		}
	}

	if rawURL == "" {
		return out
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return out
	}
	host := strings.ToLower(parsed.Host)
	applyHostHints(out, host)
	return out
}

func hasSubstr(cookie, needle string) bool {
	return strings.Contains(cookie, needle)
}

func applyHostHints(h HttpHeaders, host string) {
	switch {
	case strings.Contains(host, "baidu.com"):
		h["Referer"] = valueOr(h, "Referer", "https://www.baidu.com/")
		setSecFetch(h, "document", "navigate", "none", "?1")
		if !hasSubstr(h["Cookie"], "BAIDUID") {
			h["Cookie"] = h["Cookie"] + "; BAIDUID=" + generateBaiduID()
		}

	case strings.Contains(host, "so.com"):
		h["Referer"] = valueOr(h, "Referer", "https://www.so.com/")
		setSecFetch(h, "document", "navigate", "none", "?1")
		h["Connection"] = "keep-alive"
		h["Priority"] = "u=0, i"
		if !hasSubstr(h["Cookie"], "QiHooGUID") {
			h["Cookie"] = h["Cookie"] + "; QiHooGUID=" + strings.ToUpper(randomHex(16))
		}

	case strings.Contains(host, "movie.douban.com"):
		if !hasSubstr(h["Cookie"], "__yadk_uid") {
			h["Cookie"] = h["Cookie"] + "; __yadk_uid=" + randomAlnum(32)
		}
		h["Referer"] = valueOr(h, "Referer", "https://movie.douban.com/")
		setSecFetch(h, "document", "navigate", "none", "?1")
		fallthrough
	case strings.Contains(host, "douban.com"):
		if !hasSubstr(h["Cookie"], "bid=") {
			h["Cookie"] = h["Cookie"] + `; bid="` + randomAlnum(11) + `"`
		}
		if h["Referer"] == "" {
			h["Referer"] = "https://www.douban.com/"
		}
		setSecFetch(h, "document", "navigate", "none", "?1")

	case strings.Contains(host, "bing.com"):
		h["Referer"] = valueOr(h, "Referer", "https://www.bing.com/")
		setSecFetch(h, "document", "navigate", "none", "?1")
		if !hasSubstr(h["Cookie"], "_EDGE_V") {
			h["Cookie"] = h["Cookie"] + "; _EDGE_V=1; MUID=" + strings.ToUpper(randomHex(16))
		}

	case strings.Contains(host, "google.com"):
		h["Referer"] = valueOr(h, "Referer", "https://www.google.com/")
		setSecFetch(h, "document", "navigate", "none", "?1")
		if !hasSubstr(h["Cookie"], "NID") {
			h["Cookie"] = h["Cookie"] + "; NID=" + randomHex(64)
		}

	case strings.Contains(host, "sogou.com"):
		h["Referer"] = valueOr(h, "Referer", "https://www.sogou.com/")
		setSecFetch(h, "document", "navigate", "same-origin", "")
		h["Connection"] = "keep-alive"

	case strings.Contains(host, "duckduckgo.com"):
		h["Referer"] = valueOr(h, "Referer", "https://duckduckgo.com/")
		setSecFetch(h, "document", "navigate", "none", "?1")
		if !hasSubstr(h["Cookie"], "dcm") {
			h["Cookie"] = h["Cookie"] + "; dcm=1; __ddg1_=" + randomAlnum(32)
		}
	}
}

func valueOr(h HttpHeaders, key, def string) string {
	if v, ok := h[key]; ok && v != "" {
		return v
	}
	return def
}

func setSecFetch(h HttpHeaders, dest, mode, site, user string) {
	h["Sec-Fetch-Dest"] = dest
	h["Sec-Fetch-Mode"] = mode
	h["Sec-Fetch-Site"] = site
	if user != "" {
		h["Sec-Fetch-User"] = user
	}
}
