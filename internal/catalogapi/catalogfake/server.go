// Package catalogfake is an in-memory stand-in for the remote catalog
// service. It speaks the same routes and JSON shapes as the real API and is
// used by tests and by cmd/tools/mockcatalog.
package catalogfake

import (
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"catalogadmin.dev/app/internal/modules/products"
)

const pageSize = 10

type Config struct {
	APIPath  string
	Username string
	Password string
	TokenTTL time.Duration
}

// Server holds the fake catalog state. Safe for concurrent use.
type Server struct {
	cfg Config

	mu       sync.Mutex
	tokens   map[string]time.Time
	products map[string]storedProduct
	seq      int
}

type storedProduct struct {
	seq int
	p   products.Product
}

func New(cfg Config) *Server {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return &Server{
		cfg:      cfg,
		tokens:   map[string]time.Time{},
		products: map[string]storedProduct{},
	}
}

// Handler returns the gin engine serving the fake API.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/admin/signin", s.signIn)
	r.POST("/logout", s.signOut)
	r.POST("/api/user/check", s.requireToken, s.check)

	api := r.Group("/api/" + s.cfg.APIPath)
	api.GET("/product/:id", s.getProduct)

	adm := api.Group("/admin", s.requireToken)
	adm.GET("/products", s.listProducts)
	adm.POST("/product", s.createProduct)
	adm.PUT("/product/:id", s.updateProduct)
	adm.DELETE("/product/:id", s.deleteProduct)

	return r
}

// Seed inserts a product directly and returns its id.
func (s *Server) Seed(p products.Product) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.seq++
	s.products[p.ID] = storedProduct{seq: s.seq, p: p}
	return p.ID
}

// Product returns the stored record, for assertions.
func (s *Server) Product(id string) (products.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sp, ok := s.products[id]
	return sp.p, ok
}

// All returns every stored product in insertion order.
func (s *Server) All() []products.Product {
	s.mu.Lock()
	stored := make([]storedProduct, 0, len(s.products))
	for _, sp := range s.products {
		stored = append(stored, sp)
	}
	s.mu.Unlock()

	sort.Slice(stored, func(i, j int) bool { return stored[i].seq < stored[j].seq })
	out := make([]products.Product, 0, len(stored))
	for _, sp := range stored {
		out = append(out, sp.p)
	}
	return out
}

// IssueToken registers a valid token without going through sign-in.
func (s *Server) IssueToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok := uuid.NewString()
	s.tokens[tok] = time.Now().Add(s.cfg.TokenTTL)
	return tok
}

// RevokeAll invalidates every issued token.
func (s *Server) RevokeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = map[string]time.Time{}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) signIn(c *gin.Context) {
	var in credentials
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	if in.Username != s.cfg.Username || in.Password != s.cfg.Password {
		fail(c, http.StatusBadRequest, "login failed")
		return
	}

	s.mu.Lock()
	tok := uuid.NewString()
	exp := time.Now().Add(s.cfg.TokenTTL)
	s.tokens[tok] = exp
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "signed in",
		"uid":     "fake-admin",
		"token":   tok,
		"expired": exp.UnixMilli(),
	})
}

func (s *Server) signOut(c *gin.Context) {
	tok := c.GetHeader("Authorization")
	s.mu.Lock()
	delete(s.tokens, tok)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "signed out"})
}

func (s *Server) requireToken(c *gin.Context) {
	tok := c.GetHeader("Authorization")
	s.mu.Lock()
	exp, ok := s.tokens[tok]
	s.mu.Unlock()
	if !ok || time.Now().After(exp) {
		fail(c, http.StatusUnauthorized, "token invalid or expired")
		c.Abort()
		return
	}
	c.Next()
}

func (s *Server) check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "uid": "fake-admin"})
}

func (s *Server) listProducts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	all := s.All()
	totalPages := (len(all) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	from := (page - 1) * pageSize
	to := min(from+pageSize, len(all))

	out := make([]products.Product, 0, to-from)
	out = append(out, all[from:to]...)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": out,
		"pagination": products.Pagination{
			TotalPages:  totalPages,
			CurrentPage: page,
			HasPre:      page > 1,
			HasNext:     page < totalPages,
		},
	})
}

func (s *Server) getProduct(c *gin.Context) {
	p, ok := s.Product(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, "product not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": p})
}

type dataBody struct {
	Data products.Payload `json:"data"`
}

func (s *Server) createProduct(c *gin.Context) {
	var in dataBody
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	if msgs := validatePayload(in.Data); len(msgs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msgs})
		return
	}
	id := s.Seed(fromPayload("", in.Data))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "created", "id": id})
}

func (s *Server) updateProduct(c *gin.Context) {
	id := c.Param("id")
	var in dataBody
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	if msgs := validatePayload(in.Data); len(msgs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msgs})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sp, ok := s.products[id]
	if !ok {
		fail(c, http.StatusNotFound, "product not found")
		return
	}
	sp.p = fromPayload(id, in.Data)
	s.products[id] = sp
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "updated"})
}

func (s *Server) deleteProduct(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		fail(c, http.StatusNotFound, "product not found")
		return
	}
	delete(s.products, id)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "deleted"})
}

// the real service requires these three
func validatePayload(p products.Payload) []string {
	var msgs []string
	if p.Title == "" {
		msgs = append(msgs, "title is required")
	}
	if p.Category == "" {
		msgs = append(msgs, "category is required")
	}
	if p.Unit == "" {
		msgs = append(msgs, "unit is required")
	}
	return msgs
}

func fromPayload(id string, d products.Payload) products.Product {
	origin, price := d.OriginPrice, d.Price
	return products.Product{
		ID:          id,
		Title:       d.Title,
		Category:    d.Category,
		Unit:        d.Unit,
		OriginPrice: &origin,
		Price:       &price,
		Description: d.Description,
		Content:     d.Content,
		IsEnabled:   d.IsEnabled,
		ImageURL:    d.ImageURL,
		ImagesURL:   d.ImagesURL,
	}
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "message": msg})
}
