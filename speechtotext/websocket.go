package speechtotext

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/broady/watson"
	"github.com/broady/watson/internal/meta"
)

const defaultChunkSize = 8192

// Data-usage headers that the handshake also carries as query parameters.
const (
	learningOptOutHeader = "X-Watson-Learning-Opt-Out"
	metadataHeader       = "X-Watson-Metadata"
)

// RecognizeUsingWebsocketOptions are the arguments of RecognizeUsingWebsocket.
type RecognizeUsingWebsocketOptions struct {
	Audio io.Reader `body:"audio" validate:"required"`

	// ContentType is the audio format. If empty it is sniffed from the audio.
	ContentType string

	RecognitionParams

	// InterimResults requests hypotheses for audio that is still being
	// processed. Interim results have Final set to false.
	InterimResults *bool

	// ProcessingMetrics and AudioMetrics request the corresponding
	// messages, at ProcessingMetricsInterval seconds for the former.
	ProcessingMetrics         *bool
	ProcessingMetricsInterval *float64
	AudioMetrics              *bool

	// ChunkSize is the size of each binary audio frame. Default 8192.
	ChunkSize int

	// LearningOptOut and CustomerID are sent as the
	// x-watson-learning-opt-out and x-watson-metadata query parameters
	// since browsers cannot set headers on a websocket handshake. The
	// same headers set by defaults, interceptors or Headers are copied
	// onto the query too.
	LearningOptOut bool
	CustomerID     string

	Headers map[string]string
}

// startMessage is the first text frame of a session.
type startMessage struct {
	Action                    string   `json:"action"`
	ContentType               string   `json:"content-type"`
	InactivityTimeout         *int64   `json:"inactivity_timeout,omitempty"`
	InterimResults            *bool    `json:"interim_results,omitempty"`
	Keywords                  []string `json:"keywords,omitempty"`
	KeywordsThreshold         *float64 `json:"keywords_threshold,omitempty"`
	MaxAlternatives           *int64   `json:"max_alternatives,omitempty"`
	WordAlternativesThreshold *float64 `json:"word_alternatives_threshold,omitempty"`
	WordConfidence            *bool    `json:"word_confidence,omitempty"`
	Timestamps                *bool    `json:"timestamps,omitempty"`
	ProfanityFilter           *bool    `json:"profanity_filter,omitempty"`
	SmartFormatting           *bool    `json:"smart_formatting,omitempty"`
	SpeakerLabels             *bool    `json:"speaker_labels,omitempty"`
	GrammarName               string   `json:"grammar_name,omitempty"`
	Redaction                 *bool    `json:"redaction,omitempty"`
	ProcessingMetrics         *bool    `json:"processing_metrics,omitempty"`
	ProcessingMetricsInterval *float64 `json:"processing_metrics_interval,omitempty"`
	AudioMetrics              *bool    `json:"audio_metrics,omitempty"`
}

type stopMessage struct {
	Action string `json:"action"`
}

// serverMessage is any text frame sent by the service.
type serverMessage struct {
	State string `json:"state"`
	Error string `json:"error"`
	SpeechRecognitionResults
}

// RecognizeSession is an open websocket recognition session. Results
// streams the audio and yields each message from the service.
type RecognizeSession struct {
	conn      *websocket.Conn
	audio     io.Reader
	start     startMessage
	chunkSize int
	logger    *slog.Logger

	mu      sync.Mutex
	stopCtx func() bool

	consumed  atomic.Bool
	closeOnce sync.Once
}

// RecognizeUsingWebsocket opens a websocket session. The connection is
// established before it returns, so handshake failures (bad credentials,
// unknown model) are reported here as *watson.Error. Audio is not sent
// until Results is iterated.
//
//	sess, err := stt.RecognizeUsingWebsocket(ctx, opts)
//	if err != nil { ... }
//	defer sess.Close()
//	for res, err := range sess.Results() {
//	    if err != nil { ... }
//	    fmt.Println(res.Transcript())
//	}
func (s *Service) RecognizeUsingWebsocket(ctx context.Context, opts *RecognizeUsingWebsocketOptions) (*RecognizeSession, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, err
	}
	audio, contentType, err := audioBody(opts.Audio, opts.ContentType)
	if err != nil {
		return nil, err
	}

	u, err := websocketURL(s.ServiceURL(), opts)
	if err != nil {
		return nil, err
	}
	header := s.DefaultHeaders()
	auth, err := watson.AuthHeader(s.Authenticator())
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	for k, vs := range auth {
		header[k] = vs
	}
	header.Set("User-Agent", meta.UserAgent())
	header.Set(meta.AnalyticsHeader, meta.Analytics(serviceName, strings.ToUpper(serviceVersion), "recognize_using_websocket"))
	for k, v := range watson.HeadersFromContext(ctx) {
		header.Set(k, v)
	}
	for k, v := range opts.Headers {
		header.Set(k, v)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header = header

	dialer := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: 45 * time.Second,
	}
	if tr, ok := s.HTTPClient().Transport.(*http.Transport); ok && tr.TLSClientConfig != nil {
		dialer.TLSClientConfig = tr.TLSClientConfig.Clone()
	}

	var conn *websocket.Conn
	call := &watson.Call{Operation: s.Operation("recognize_using_websocket"), Request: req}
	_, err = s.Intercept(ctx, call, func(ctx context.Context, call *watson.Call) (*watson.DetailedResponse, error) {
		target := dataUsageURL(call.Request.URL, call.Request.Header)
		c, resp, err := dialer.DialContext(ctx, target, call.Request.Header)
		if err != nil {
			if resp != nil && resp.StatusCode >= 300 {
				return &watson.DetailedResponse{StatusCode: resp.StatusCode, Headers: resp.Header}, watson.ErrorFromResponse(resp)
			}
			return nil, fmt.Errorf("dial %s: %w", redactQuery(target), err)
		}
		conn = c
		return &watson.DetailedResponse{StatusCode: resp.StatusCode, Headers: resp.Header}, nil
	})
	if err != nil {
		if conn != nil {
			conn.Close()
		}
		return nil, err
	}

	chunk := opts.ChunkSize
	if chunk <= 0 {
		chunk = defaultChunkSize
	}
	sess := &RecognizeSession{
		conn:      conn,
		audio:     audio,
		start:     newStartMessage(opts, contentType),
		chunkSize: chunk,
		logger:    s.Logger(),
	}
	sess.mu.Lock()
	sess.stopCtx = context.AfterFunc(ctx, func() { sess.Close() })
	sess.mu.Unlock()
	return sess, nil
}

func newStartMessage(opts *RecognizeUsingWebsocketOptions, contentType string) startMessage {
	p := &opts.RecognitionParams
	return startMessage{
		Action:                    "start",
		ContentType:               contentType,
		InactivityTimeout:         p.InactivityTimeout,
		InterimResults:            opts.InterimResults,
		Keywords:                  p.Keywords,
		KeywordsThreshold:         p.KeywordsThreshold,
		MaxAlternatives:           p.MaxAlternatives,
		WordAlternativesThreshold: p.WordAlternativesThreshold,
		WordConfidence:            p.WordConfidence,
		Timestamps:                p.Timestamps,
		ProfanityFilter:           p.ProfanityFilter,
		SmartFormatting:           p.SmartFormatting,
		SpeakerLabels:             p.SpeakerLabels,
		GrammarName:               p.GrammarName,
		Redaction:                 p.Redaction,
		ProcessingMetrics:         opts.ProcessingMetrics,
		ProcessingMetricsInterval: opts.ProcessingMetricsInterval,
		AudioMetrics:              opts.AudioMetrics,
	}
}

// websocketURL builds the wss:// recognize URL. Model and customization
// settings travel in the query since they select the session's model.
func websocketURL(serviceURL string, opts *RecognizeUsingWebsocketOptions) (string, error) {
	u, err := url.Parse(serviceURL + "/v1/recognize")
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	}
	q := url.Values{}
	add := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	p := &opts.RecognitionParams
	add("model", p.Model)
	add("language_customization_id", p.LanguageCustomizationID)
	add("acoustic_customization_id", p.AcousticCustomizationID)
	add("customization_id", p.CustomizationID)
	add("base_model_version", p.BaseModelVersion)
	if p.CustomizationWeight != nil {
		q.Set("customization_weight", strconv.FormatFloat(*p.CustomizationWeight, 'f', -1, 64))
	}
	if opts.LearningOptOut {
		q.Set("x-watson-learning-opt-out", "true")
	}
	if opts.CustomerID != "" {
		q.Set("x-watson-metadata", "customer_id="+opts.CustomerID)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// dataUsageURL copies the data-usage headers onto the query, which is
// where the service reads them during a websocket handshake.
func dataUsageURL(u *url.URL, h http.Header) string {
	q := u.Query()
	for _, kv := range [][2]string{
		{learningOptOutHeader, "x-watson-learning-opt-out"},
		{metadataHeader, "x-watson-metadata"},
	} {
		if v := h.Get(kv[0]); v != "" && !q.Has(kv[1]) {
			q.Set(kv[1], v)
		}
	}
	out := *u
	out.RawQuery = q.Encode()
	return out.String()
}

func redactQuery(u string) string {
	if i := strings.IndexByte(u, '?'); i >= 0 {
		return u[:i]
	}
	return u
}

// Results sends the start message, streams the audio as binary frames
// followed by a stop message, and yields each recognition message. The
// sequence ends when the service returns to the listening state after the
// stop message, or at the first error. Errors reported by the service are
// yielded as *watson.Error. A session can be iterated only once; the
// connection is closed when iteration ends.
func (rs *RecognizeSession) Results() iter.Seq2[*SpeechRecognitionResults, error] {
	return func(yield func(*SpeechRecognitionResults, error) bool) {
		if !rs.consumed.CompareAndSwap(false, true) {
			yield(nil, errors.New("recognize session already consumed"))
			return
		}
		defer rs.Close()

		if err := rs.conn.WriteJSON(rs.start); err != nil {
			yield(nil, fmt.Errorf("send start message: %w", err))
			return
		}

		sendErr := make(chan error, 1)
		go func() { sendErr <- rs.sendAudio() }()

		listening := 0
		for {
			_, data, err := rs.conn.ReadMessage()
			if err != nil {
				select {
				case serr := <-sendErr:
					if serr != nil {
						err = serr
					}
				default:
				}
				if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					return
				}
				yield(nil, fmt.Errorf("read result: %w", err))
				return
			}
			var msg serverMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				yield(nil, fmt.Errorf("decode result: %w", err))
				return
			}

			switch {
			case msg.Error != "":
				yield(nil, watson.NewError(watson.CodeUnknown, msg.Error))
				return
			case msg.State == "listening":
				// The first listening state acknowledges start; the
				// second follows the final results for the audio.
				listening++
				if listening == 2 {
					return
				}
				continue
			}

			res := msg.SpeechRecognitionResults
			if err := watson.ValidateModel(&res, data); err != nil {
				rs.logger.Debug("invalid recognition message", slog.Any("error", err))
				if !yield(nil, err) {
					return
				}
				continue
			}
			if !yield(&res, nil) {
				return
			}
		}
	}
}

// sendAudio writes the audio in chunks and then the stop message.
func (rs *RecognizeSession) sendAudio() error {
	buf := make([]byte, rs.chunkSize)
	for {
		n, err := rs.audio.Read(buf)
		if n > 0 {
			if werr := rs.conn.WriteMessage(websocket.BinaryMessage, buf[:n]); werr != nil {
				return fmt.Errorf("send audio: %w", werr)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read audio: %w", err)
		}
	}
	if err := rs.conn.WriteJSON(stopMessage{Action: "stop"}); err != nil {
		return fmt.Errorf("send stop message: %w", err)
	}
	return nil
}

// Close ends the session. It is safe to call more than once and
// concurrently with Results.
func (rs *RecognizeSession) Close() error {
	var err error
	rs.closeOnce.Do(func() {
		rs.mu.Lock()
		stop := rs.stopCtx
		rs.mu.Unlock()
		if stop != nil {
			stop()
		}
		deadline := time.Now().Add(time.Second)
		_ = rs.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		err = rs.conn.Close()
	})
	return err
}
