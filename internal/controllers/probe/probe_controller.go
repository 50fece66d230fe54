package probe

import (
	"context"
	_ "embed"
	"math"

	"github.com/DIMO-Network/webhook-validator/internal/services/prober"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

//go:embed static/index.html
var formPage []byte

type Prober interface {
	Probe(ctx context.Context, req prober.Request) *prober.Result
}

// ProbeController serves the form page and runs probes.
type ProbeController struct {
	prober Prober
}

// NewProbeController creates a new ProbeController.
func NewProbeController(p Prober) *ProbeController {
	return &ProbeController{prober: p}
}

// FormPage godoc
// @Summary      Webhook validator form
// @Description  Returns the HTML page used to submit probes.
// @Tags         Probes
// @Produce      html
// @Success      200
// @Router       / [get]
func (pc *ProbeController) FormPage(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(formPage)
}

// TestWebhook godoc
// @Summary      Probe a webhook URL
// @Description  Sends one synthetic notification to the URL and classifies the response. Every outcome, including invalid input, is returned with status 200.
// @Tags         Probes
// @Accept       x-www-form-urlencoded
// @Accept       json
// @Produce      json
// @Param        cpn    formData  string  true  "Account ID"
// @Param        topic  formData  string  true  "Topic (document or stock)"
// @Param        url    formData  string  true  "Webhook URL"
// @Success      200    {object}  ProbeResponse
// @Router       /test_webhook [post]
// @Router       /v1/probes [post]
func (pc *ProbeController) TestWebhook(c *fiber.Ctx) error {
	var payload ProbeRequest
	if err := c.BodyParser(&payload); err != nil {
		// Unreadable bodies are validated as an empty request.
		zerolog.Ctx(c.UserContext()).Debug().Err(err).Msg("Failed to parse probe request")
		payload = ProbeRequest{}
	}

	res := pc.prober.Probe(c.UserContext(), prober.Request{
		AccountID: payload.AccountID,
		Topic:     payload.Topic,
		TargetURL: payload.URL,
	})
	return c.JSON(newProbeResponse(res))
}

func newProbeResponse(res *prober.Result) ProbeResponse {
	out := ProbeResponse{
		Verdict: string(res.Verdict),
		Failure: res.Verdict.IsFailure(),
		Message: res.Message,
		ProbeID: res.ID,
		Payload: res.Payload,
	}
	if res.Elapsed > 0 {
		secs := math.Round(res.Elapsed.Seconds()*100) / 100
		out.ElapsedSeconds = &secs
	}
	if res.Responded {
		out.Status = res.StatusCode
		out.ContentType = res.ContentType
		bodyLength := res.BodyLength
		out.BodyLength = &bodyLength
		out.BodyTruncated = res.BodyTruncated
	}
	return out
}
