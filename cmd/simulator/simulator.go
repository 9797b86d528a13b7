package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// SimulatorConfig holds the simulator configuration
type SimulatorConfig struct {
	ServerURL  string
	TenantID   string
	CustomerID string
	Language   string
}

// Simulator is a webchat client that drives conversations against a running
// engine, either scripted or from stdin.
type Simulator struct {
	config *SimulatorConfig
	log    *zap.Logger

	conn *websocket.Conn
	mu   sync.Mutex

	done chan struct{}
}

type chatFrame struct {
	Message  string `json:"message"`
	Language string `json:"language,omitempty"`
}

type replyFrame struct {
	ConversationID string                 `json:"conversationId"`
	Text           string                 `json:"text"`
	Action         string                 `json:"action"`
	Language       string                 `json:"language"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	Error          string                 `json:"error,omitempty"`
}

func NewSimulator(config *SimulatorConfig, log *zap.Logger) *Simulator {
	return &Simulator{
		config: config,
		log:    log,
		done:   make(chan struct{}),
	}
}

// Connect dials the webchat endpoint and starts the reply reader.
func (s *Simulator) Connect() error {
	endpoint, err := url.Parse(s.config.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}

	query := endpoint.Query()
	query.Set("tenantId", s.config.TenantID)
	query.Set("customerId", s.config.CustomerID)
	endpoint.RawQuery = query.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", endpoint.String(), err)
	}
	s.conn = conn

	s.log.Info("Connected",
		zap.String("server", endpoint.String()),
		zap.String("tenant", s.config.TenantID),
	)

	go s.readLoop()
	return nil
}

func (s *Simulator) Stop() {
	close(s.done)
	if s.conn != nil {
		s.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		s.conn.Close()
	}
}

// Send pushes one user message onto the socket.
func (s *Simulator) Send(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(chatFrame{
		Message:  message,
		Language: s.config.Language,
	})
}

func (s *Simulator) readLoop() {
	for {
		var reply replyFrame
		if err := s.conn.ReadJSON(&reply); err != nil {
			select {
			case <-s.done:
			default:
				s.log.Error("Read failed", zap.Error(err))
			}
			return
		}

		if reply.Error != "" {
			fmt.Printf("<< error: %s\n", reply.Error)
			continue
		}

		fmt.Printf("<< [%s/%s] %s\n", reply.Action, reply.Language, reply.Text)
		if len(reply.Metadata) > 0 {
			meta, _ := json.Marshal(reply.Metadata)
			fmt.Printf("   metadata: %s\n", meta)
		}
	}
}

// RunInteractive reads messages from stdin until /quit.
func (s *Simulator) RunInteractive() {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(">> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "/quit":
			s.Stop()
			return
		case strings.HasPrefix(line, "/lang "):
			s.config.Language = strings.TrimSpace(strings.TrimPrefix(line, "/lang "))
			fmt.Printf("Language set to %q\n", s.config.Language)
		default:
			if err := s.Send(line); err != nil {
				s.log.Error("Send failed", zap.Error(err))
				return
			}
			// Give the reply a moment to print before the next prompt.
			time.Sleep(500 * time.Millisecond)
		}
	}
}

// Canned conversations covering the main flows.
var scripts = map[string][]string{
	"order": {
		"Hello",
		"Where is my order?",
		"Order #ORD-4521",
	},
	"commerce": {
		"iPhone 15 Pro price",
		"iPhone 15 Pro ache?",
		"What do you recommend?",
	},
	"complaint": {
		"amar order ekhono ashe nai, khub kharap service",
		"I paid with bkash but the payment failed",
	},
}

// RunScript replays a canned conversation with a short gap between turns.
func (s *Simulator) RunScript(name string) error {
	lines, ok := scripts[name]
	if !ok {
		return fmt.Errorf("unknown script %q (want order, commerce or complaint)", name)
	}

	for _, line := range lines {
		fmt.Printf(">> %s\n", line)
		if err := s.Send(line); err != nil {
			return err
		}
		time.Sleep(2 * time.Second)
	}
	return nil
}
