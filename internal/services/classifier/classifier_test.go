package classifier

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAckRule struct {
	match bool
	err   error
	calls int
}

func (f *fakeAckRule) Match(int, string, string) (bool, error) {
	f.calls++
	return f.match, f.err
}

func htmlPage(extraHead string) string {
	return "<!DOCTYPE html><html><head><title>Shop</title>" + extraHead + "</head><body>" +
		strings.Repeat("<p>Welcome to our store, browse the catalog.</p>", 40) + "</body></html>"
}

func TestClassify(t *testing.T) {
	t.Parallel()

	fast := 200 * time.Millisecond
	longPlain := strings.Repeat("lorem ipsum dolor sit amet ", 100)

	tests := []struct {
		name        string
		exchange    Exchange
		want        Verdict
		msgContains string
	}{
		{
			name:        "dns failure is unreachable",
			exchange:    Exchange{ErrKind: ErrorKindDNS, Elapsed: 20 * time.Millisecond},
			want:        VerdictUnreachable,
			msgContains: "not valid or does not exist",
		},
		{
			name:        "connection refused is unreachable",
			exchange:    Exchange{ErrKind: ErrorKindRefused, Elapsed: time.Millisecond},
			want:        VerdictUnreachable,
			msgContains: "connection refused",
		},
		{
			name:        "tls failure is unreachable",
			exchange:    Exchange{ErrKind: ErrorKindTLS, ErrDetail: "certificate signed by unknown authority"},
			want:        VerdictUnreachable,
			msgContains: "unknown authority",
		},
		{
			name:        "other network failure is unreachable",
			exchange:    Exchange{ErrKind: ErrorKindNetwork, ErrDetail: "connection reset by peer"},
			want:        VerdictUnreachable,
			msgContains: "connection reset by peer",
		},
		{
			name:        "no response within budget is timeout",
			exchange:    Exchange{ErrKind: ErrorKindTimeout, Elapsed: 3 * time.Second},
			want:        VerdictTimeout,
			msgContains: "3.00s",
		},
		{
			name:        "late response is timeout even when ok",
			exchange:    Exchange{StatusCode: 200, Body: []byte("ok"), Elapsed: 3100 * time.Millisecond},
			want:        VerdictTimeout,
			msgContains: "maximum allowed time",
		},
		{
			name:        "404 is http error regardless of body",
			exchange:    Exchange{StatusCode: 404, ContentType: "application/json", Body: []byte(`{"status":"received"}`), Elapsed: fast},
			want:        VerdictHTTPError,
			msgContains: "status 404",
		},
		{
			name:        "405 gets method not allowed message",
			exchange:    Exchange{StatusCode: 405, Elapsed: fast},
			want:        VerdictHTTPError,
			msgContains: "Method Not Allowed",
		},
		{
			name:     "3xx is http error",
			exchange: Exchange{StatusCode: 302, Elapsed: fast},
			want:     VerdictHTTPError,
		},
		{
			name:        "html document above threshold is webpage",
			exchange:    Exchange{StatusCode: 200, ContentType: "text/plain", Body: []byte(htmlPage("")), Elapsed: fast},
			want:        VerdictWebpage,
			msgContains: "looks like a web page",
		},
		{
			name:     "html content type above threshold is webpage",
			exchange: Exchange{StatusCode: 200, ContentType: "text/html; charset=utf-8", Body: []byte(longPlain), Elapsed: fast},
			want:     VerdictWebpage,
		},
		{
			name: "page builder signature is webpage",
			exchange: Exchange{
				StatusCode: 200,
				Body:       []byte(`<div class="app"><script src="https://static.wixstatic.com/wix.com/boot.js"></script>` + longPlain + `</div>`),
				Elapsed:    fast,
			},
			want: VerdictWebpage,
		},
		{
			name:     "tiny html is not a webpage",
			exchange: Exchange{StatusCode: 200, ContentType: "text/html", Body: []byte("<html>OK</html>"), Elapsed: fast},
			want:     VerdictOK,
		},
		{
			name:        "empty body 200 is ok",
			exchange:    Exchange{StatusCode: 200, Elapsed: fast},
			want:        VerdictOK,
			msgContains: "(200) in 0.20s",
		},
		{
			name:     "json content type is ok",
			exchange: Exchange{StatusCode: 202, ContentType: "application/json", Body: []byte(longPlain), Elapsed: fast},
			want:     VerdictOK,
		},
		{
			name:     "xml content type is ok",
			exchange: Exchange{StatusCode: 200, ContentType: "application/xml; charset=utf-8", Body: []byte("<result>" + longPlain + "</result>"), Elapsed: fast},
			want:     VerdictOK,
		},
		{
			name:     "structured suffix content type is ok",
			exchange: Exchange{StatusCode: 200, ContentType: "application/problem+json", Body: []byte(longPlain), Elapsed: fast},
			want:     VerdictOK,
		},
		{
			name:     "large body with ack token is ok",
			exchange: Exchange{StatusCode: 200, ContentType: "text/plain", Body: []byte(longPlain + " received"), Elapsed: fast},
			want:     VerdictOK,
		},
		{
			name:     "small plain body is ok",
			exchange: Exchange{StatusCode: 200, ContentType: "text/plain", Body: []byte("thanks"), Elapsed: fast},
			want:     VerdictOK,
		},
		{
			name:        "large unknown body is unrecognized",
			exchange:    Exchange{StatusCode: 200, ContentType: "text/plain", Body: []byte(longPlain), Elapsed: fast},
			want:        VerdictUnrecognized,
			msgContains: "Content-Type: text/plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := Classify(DefaultPolicy(), &tt.exchange)
			assert.Equal(t, tt.want, res.Verdict, res.Message)
			if tt.msgContains != "" {
				assert.Contains(t, res.Message, tt.msgContains)
			}
		})
	}
}

func TestClassify_ResultFields(t *testing.T) {
	t.Parallel()

	t.Run("response fields are copied", func(t *testing.T) {
		res := Classify(DefaultPolicy(), &Exchange{StatusCode: 200, ContentType: "application/json", Body: []byte(`{"status":"received"}`), Elapsed: 150 * time.Millisecond})
		require.Equal(t, VerdictOK, res.Verdict)
		assert.True(t, res.Responded)
		assert.Equal(t, 200, res.StatusCode)
		assert.Equal(t, "application/json", res.ContentType)
		assert.Equal(t, 21, res.BodyLength)
		assert.Equal(t, 150*time.Millisecond, res.Elapsed)
	})

	t.Run("no response keeps fields empty", func(t *testing.T) {
		res := Classify(DefaultPolicy(), &Exchange{ErrKind: ErrorKindRefused, Elapsed: time.Millisecond})
		assert.False(t, res.Responded)
		assert.Equal(t, ErrorKindRefused, res.ErrKind)
		assert.Zero(t, res.StatusCode)
		assert.Equal(t, time.Millisecond, res.Elapsed)
	})

	t.Run("truncated body is reported", func(t *testing.T) {
		body := strings.Repeat("x", 4096)
		res := Classify(DefaultPolicy(), &Exchange{StatusCode: 200, ContentType: "text/plain", Body: []byte(body), Truncated: true, Elapsed: time.Millisecond})
		require.Equal(t, VerdictUnrecognized, res.Verdict)
		assert.True(t, res.BodyTruncated)
		assert.Equal(t, 4096, res.BodyLength)
		assert.Contains(t, res.Message, "response body truncated after 4096 bytes")
	})

	t.Run("complete body has no truncation note", func(t *testing.T) {
		res := Classify(DefaultPolicy(), &Exchange{StatusCode: 200, Body: []byte("ok"), Elapsed: time.Millisecond})
		assert.False(t, res.BodyTruncated)
		assert.NotContains(t, res.Message, "truncated")
	})
}

func TestClassify_Policy(t *testing.T) {
	t.Parallel()

	longPlain := strings.Repeat("lorem ipsum dolor sit amet ", 100)

	t.Run("ack rule can accept unrecognized content", func(t *testing.T) {
		rule := &fakeAckRule{match: true}
		p := DefaultPolicy()
		p.AckRule = rule
		res := Classify(p, &Exchange{StatusCode: 200, Body: []byte(longPlain)})
		assert.Equal(t, VerdictOK, res.Verdict)
		assert.Equal(t, 1, rule.calls)
	})

	t.Run("ack rule error is no match", func(t *testing.T) {
		p := DefaultPolicy()
		p.AckRule = &fakeAckRule{match: true, err: errors.New("boom")}
		res := Classify(p, &Exchange{StatusCode: 200, Body: []byte(longPlain)})
		assert.Equal(t, VerdictUnrecognized, res.Verdict)
	})

	t.Run("ack rule never overrides webpage", func(t *testing.T) {
		rule := &fakeAckRule{match: true}
		p := DefaultPolicy()
		p.AckRule = rule
		res := Classify(p, &Exchange{StatusCode: 200, Body: []byte(htmlPage(""))})
		assert.Equal(t, VerdictWebpage, res.Verdict)
		assert.Zero(t, rule.calls)
	})

	t.Run("custom thresholds", func(t *testing.T) {
		p := Policy{WebpageMinBytes: 5, SmallBodyMaxBytes: 3}
		res := Classify(p, &Exchange{StatusCode: 200, Body: []byte("<html>hi</html>")})
		assert.Equal(t, VerdictWebpage, res.Verdict)
	})

	t.Run("custom timeout", func(t *testing.T) {
		p := Policy{Timeout: 5 * time.Second}
		res := Classify(p, &Exchange{StatusCode: 200, Elapsed: 4 * time.Second})
		assert.Equal(t, VerdictOK, res.Verdict)
	})

	t.Run("custom ack tokens", func(t *testing.T) {
		p := Policy{AckTokens: []string{" Recibido "}}
		res := Classify(p, &Exchange{StatusCode: 200, Body: []byte(longPlain + " RECIBIDO")})
		assert.Equal(t, VerdictOK, res.Verdict)
	})
}

func TestContainsAckToken(t *testing.T) {
	t.Parallel()

	tokens := DefaultAckTokens()
	assert.True(t, containsAckToken(`{"status":"ok"}`, tokens))
	assert.True(t, containsAckToken("message received", tokens))
	assert.False(t, containsAckToken("this book looks fine", tokens))
	assert.False(t, containsAckToken("", tokens))
	assert.True(t, containsAckToken("thank you for the event", []string{"thank you"}))
}

func TestVerdict_IsFailure(t *testing.T) {
	t.Parallel()

	assert.False(t, VerdictOK.IsFailure())
	assert.False(t, VerdictWebpage.IsFailure())
	assert.False(t, VerdictUnrecognized.IsFailure())
	assert.True(t, VerdictTimeout.IsFailure())
	assert.True(t, VerdictUnreachable.IsFailure())
	assert.True(t, VerdictHTTPError.IsFailure())
	assert.True(t, VerdictInvalidInput.IsFailure())
}
