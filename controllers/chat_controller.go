package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/zelphyx/Glucoin-AI/models"
	"github.com/zelphyx/Glucoin-AI/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type ChatController struct {
	Groq    *services.GroqService
	Agent   *services.SearchAgent
	History *services.ChatHistoryService
}

func NewChatController(groq *services.GroqService, agent *services.SearchAgent, history *services.ChatHistoryService) *ChatController {
	return &ChatController{Groq: groq, Agent: agent, History: history}
}

func (cc *ChatController) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":             "Glucare Chatbot API",
		"version":             "1.0.0",
		"status":              "healthy",
		"model":               services.GroqModel,
		"groq_available":      cc.Groq.Configured(),
		"websearch_available": cc.Agent != nil,
		"endpoints": gin.H{
			"chat":           "POST /chat",
			"chat_websearch": "POST /chat/websearch",
			"chat_ws":        "GET /chat/ws",
			"chat_history":   "GET /chat/history/:session_id",
			"topics":         "GET /topics",
			"search":         "GET /search?query=...",
		},
	})
}

func (cc *ChatController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":              "healthy",
		"groq_available":      cc.Groq.Configured(),
		"websearch_available": cc.Agent != nil,
		"history_available":   cc.History.Available(),
	})
}

// Chat gates the message on topic, optionally augments with web-search
// context, and delegates the reply to the LLM provider.
func (cc *ChatController) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cc.respond(c, req)
}

// ChatWebsearch is Chat with web search forced on.
func (cc *ChatController) ChatWebsearch(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.UseWebsearch = true
	cc.respond(c, req)
}

func (cc *ChatController) respond(c *gin.Context, req models.ChatRequest) {
	start := time.Now()

	resp, status := cc.answer(req)
	if status != http.StatusOK {
		c.JSON(status, gin.H{"error": resp.Response})
		return
	}
	resp.ResponseTimeMs = time.Since(start).Milliseconds()
	c.JSON(http.StatusOK, resp)
}

// answer runs the full chat pipeline and is shared by the HTTP and
// websocket paths. A non-200 status carries its message in resp.Response.
func (cc *ChatController) answer(req models.ChatRequest) (models.ChatResponse, int) {
	if !services.IsDiabetesRelated(req.Message) {
		return models.ChatResponse{
			Success:           true,
			Response:          services.OffTopicResponse,
			IsDiabetesRelated: false,
			WebsearchUsed:     false,
			Sources:           []models.ChatSource{},
			Model:             services.GroqModel,
		}, http.StatusOK
	}

	sources := []models.ChatSource{}
	websearchUsed := false
	searchContext := ""

	if req.UseWebsearch && cc.Agent != nil {
		results, err := cc.Agent.Searcher.Search(req.Message, true)
		if err != nil {
			log.Printf("web search error: %v", err) // degraded, not fatal
		} else if len(results) > 0 {
			websearchUsed = true
			for i, r := range results {
				if i == 3 {
					break
				}
				sources = append(sources, models.ChatSource{Title: r.Title, URL: r.URL, Source: r.Source})
			}
			searchContext = cc.Agent.Searcher.FormatResultsForLLM(results)
		}
	}

	reply, err := cc.Groq.Chat(req.Message, searchContext)
	if err != nil {
		if err == services.ErrGroqNotConfigured {
			return models.ChatResponse{Response: "layanan chatbot tidak tersedia"}, http.StatusServiceUnavailable
		}
		return models.ChatResponse{Response: err.Error()}, http.StatusInternalServerError
	}

	if err := cc.History.Append(req.SessionID, "user", req.Message); err != nil {
		log.Printf("chat history append: %v", err)
	}
	if err := cc.History.Append(req.SessionID, "assistant", reply); err != nil {
		log.Printf("chat history append: %v", err)
	}

	return models.ChatResponse{
		Success:           true,
		Response:          reply,
		IsDiabetesRelated: true,
		WebsearchUsed:     websearchUsed,
		Sources:           sources,
		Model:             services.GroqModel,
	}, http.StatusOK
}

// Topics lists supported topics and sample questions.
func (cc *ChatController) Topics(c *gin.Context) {
	c.JSON(http.StatusOK, models.TopicsResponse{
		SupportedTopics: services.SupportedTopics(),
		SampleQuestions: services.SampleQuestions(),
	})
}

// Search exposes the searcher directly, without content fetching.
func (cc *ChatController) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query wajib diisi"})
		return
	}
	if cc.Agent == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Web search tidak tersedia"})
		return
	}

	results, err := cc.Agent.Searcher.Search(query, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": query, "results": results})
}

// ChatHistory returns a stored session transcript.
func (cc *ChatController) ChatHistory(c *gin.Context) {
	sessionID := c.Param("session_id")

	msgs, err := cc.History.Transcript(sessionID)
	if err != nil {
		if err == services.ErrHistoryNotConfigured {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "riwayat chat tidak tersedia"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}
	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "messages": msgs})
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // same CORS posture as the HTTP endpoints
}

// ChatWS serves realtime chat: each text frame is one user message, each
// reply frame a JSON ChatResponse.
func (cc *ChatController) ChatWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sessionID := c.Query("session_id")

	// keep connections alive through proxies
	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}

		start := time.Now()
		resp, _ := cc.answer(models.ChatRequest{Message: string(msg), SessionID: sessionID})
		resp.ResponseTimeMs = time.Since(start).Milliseconds()
		if err := conn.WriteJSON(resp); err != nil {
			return
		}
	}
}
