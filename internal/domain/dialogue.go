package domain

// IntentTag is the closed intent taxonomy. Adding a tag requires registering a
// handler in the dialogue service; the registry is validated at startup.
type IntentTag string

const (
	IntentOrderStatus         IntentTag = "order_status"
	IntentReturnRequest       IntentTag = "return_request"
	IntentProductInquiry      IntentTag = "product_inquiry"
	IntentPriceInquiry        IntentTag = "price_inquiry"
	IntentAvailabilityInquiry IntentTag = "availability_inquiry"
	IntentProductInfo         IntentTag = "product_info"
	IntentRecommendation      IntentTag = "recommendation"
	IntentPurchaseIntent      IntentTag = "purchase_intent"
	IntentCategoryBrowse      IntentTag = "category_browse"
	IntentPaymentIssue        IntentTag = "payment_issue"
	IntentDeliveryTracking    IntentTag = "delivery_tracking"
	IntentComplaint           IntentTag = "complaint"
	IntentGreeting            IntentTag = "greeting"
	IntentFallback            IntentTag = "fallback"
)

// AllIntents lists every member of the taxonomy, in the order they are
// presented to the classification model.
var AllIntents = []IntentTag{
	IntentOrderStatus,
	IntentReturnRequest,
	IntentProductInquiry,
	IntentPriceInquiry,
	IntentAvailabilityInquiry,
	IntentProductInfo,
	IntentRecommendation,
	IntentPurchaseIntent,
	IntentCategoryBrowse,
	IntentPaymentIssue,
	IntentDeliveryTracking,
	IntentComplaint,
	IntentGreeting,
	IntentFallback,
}

// ValidIntent reports whether tag is a member of the closed taxonomy.
func ValidIntent(tag IntentTag) bool {
	for _, t := range AllIntents {
		if t == tag {
			return true
		}
	}
	return false
}

// IsCommerce reports whether the intent is answered from the product catalog.
func (t IntentTag) IsCommerce() bool {
	switch t {
	case IntentProductInquiry, IntentPriceInquiry, IntentAvailabilityInquiry,
		IntentProductInfo, IntentRecommendation, IntentPurchaseIntent, IntentCategoryBrowse:
		return true
	}
	return false
}

type ActionTag string

const (
	ActionFetch    ActionTag = "fetch"
	ActionRespond  ActionTag = "respond"
	ActionHandoff  ActionTag = "handoff"
	ActionClarify  ActionTag = "clarify"
	ActionSlotFill ActionTag = "slot_fill"
)

// Utterance is one inbound message. Created per message, never persisted here.
type Utterance struct {
	Text     string   `json:"text"`
	Channel  string   `json:"channel"`
	Language Language `json:"language,omitempty"` // declared by the channel, may be empty
}

// ResolvedIntent is the immutable output of NLU resolution for one utterance.
type ResolvedIntent struct {
	Intent     IntentTag         `json:"intent"`
	Confidence float64           `json:"confidence"` // 0..1
	Language   Language          `json:"language"`
	Entities   map[string]string `json:"entities"`
	Source     string            `json:"source"` // "model" or "fallback"
}

// DialogueState holds the per-conversation slots. It belongs to exactly one
// conversation; callers racing on the same conversation must serialize Decide.
type DialogueState struct {
	Slots map[string]string `json:"slots"`
}

func NewDialogueState() *DialogueState {
	return &DialogueState{Slots: make(map[string]string)}
}

// Merge copies entities into the slots, last write wins.
func (s *DialogueState) Merge(entities map[string]string) {
	if s.Slots == nil {
		s.Slots = make(map[string]string)
	}
	for k, v := range entities {
		s.Slots[k] = v
	}
}

// Missing returns the required slot names not yet filled, preserving order.
func (s *DialogueState) Missing(required []string) []string {
	var missing []string
	for _, name := range required {
		if s.Slots[name] == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// HandoffPriority for escalation decisions.
type HandoffPriority string

const (
	HandoffPriorityHigh   HandoffPriority = "high"
	HandoffPriorityNormal HandoffPriority = "normal"
)

// DialogueContext is the request-scoped caller context threaded through every
// decision. It is supplied per call, never read from ambient state.
type DialogueContext struct {
	TenantID       string   `json:"tenant_id"`
	Channel        string   `json:"channel"`
	CustomerID     string   `json:"customer_id"`
	ConversationID string   `json:"conversation_id"`
	Message        string   `json:"message"`
	Language       Language `json:"language,omitempty"`
}

// Decision is the output of the dialogue state machine; it carries the final
// localized text plus the language it was rendered in.
type Decision struct {
	Action      ActionTag              `json:"action"`
	ResponseKey string                 `json:"response_key"`
	Text        string                 `json:"text"`
	Language    Language               `json:"language"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}
