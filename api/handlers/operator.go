package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/adaptivecare/adaptivecare-api/api"
	"github.com/adaptivecare/adaptivecare-api/config"
	"github.com/adaptivecare/adaptivecare-api/databases"
	"github.com/adaptivecare/adaptivecare-api/models"
)

type operatorLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type operatorLoginResponse struct {
	Token    string `json:"token"`
	Operator struct {
		ID    string   `json:"id"`
		Email string   `json:"email"`
		Roles []string `json:"roles"`
	} `json:"operator"`
}

type createOperatorRequest struct {
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// Operator represents the operator handler
type Operator struct {
	DB     databases.OperatorDatabase
	Config *config.Config
}

// OperatorLoginHandler handles operator login via email/password and returns a JWT
func (o Operator) OperatorLoginHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req operatorLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		config.ErrorStatus("email and password required", http.StatusBadRequest, w, fmt.Errorf("email and password required"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	operator, err := o.DB.FindOne(ctx, bson.M{"email": email, "active": true})
	if err != nil {
		config.ErrorStatus("invalid credentials", http.StatusUnauthorized, w, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(operator.Password), []byte(req.Password)); err != nil {
		config.ErrorStatus("invalid credentials", http.StatusUnauthorized, w, err)
		return
	}

	jwtSecret := []byte(o.Config.JWTSecret)
	if len(jwtSecret) == 0 {
		config.ErrorStatus("server misconfigured", http.StatusInternalServerError, w, fmt.Errorf("jwt secret is not set"))
		return
	}

	claims := jwt.MapClaims{
		"sub":   operator.ID,
		"email": operator.Email,
		"roles": operator.Roles,
		"typ":   "access",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		config.ErrorStatus("token generation failed", http.StatusInternalServerError, w, err)
		return
	}

	var resp operatorLoginResponse
	resp.Token = signed
	resp.Operator.ID = operator.ID
	resp.Operator.Email = operator.Email
	resp.Operator.Roles = operator.Roles

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

// CreateOperatorHandler creates an operator
func (o Operator) CreateOperatorHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req createOperatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		config.ErrorStatus("email and password required", http.StatusBadRequest, w, fmt.Errorf("email and password required"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	// check if the operator already exists
	existing, _ := o.DB.FindOne(ctx, bson.M{"email": email})
	if existing != nil {
		config.ErrorStatus("email already exists", http.StatusConflict, w, fmt.Errorf("duplicate email"))
		return
	}

	// hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}

	operator := models.Operator{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      req.Name,
		Password:  string(hashedPassword),
		Roles:     req.Roles,
		Active:    true,
		CreatedAt: time.Now(),
	}

	if _, err := o.DB.InsertOne(ctx, &operator); err != nil {
		config.ErrorStatus("failed to insert operator", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
