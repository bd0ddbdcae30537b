package assistant

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Service holds the Gemini client and the read-only database connection the
// shop assistant answers catalog questions from.
type Service struct {
	Client *genai.Client
	DB     *sql.DB
}

// NewService initializes the Gemini client.
func NewService(apiKey string, dbReadOnly *sql.DB) (*Service, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Service{Client: client, DB: dbReadOnly}, nil
}

// GenerateResponse answers a customer's free-text question. The model may
// call the read-only SQL tool to look up products, prices and stock.
func (s *Service) GenerateResponse(ctx context.Context, userMessage string) (string, error) {
	model := s.Client.GenerativeModel("gemini-1.5-flash")

	sqlTool := &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        "run_readonly_sql",
				Description: "Executes a READ-ONLY SQL query (SELECT only) against the bakery catalog.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"query": {
							Type:        genai.TypeString,
							Description: "The MySQL SELECT query to execute.",
						},
					},
					Required: []string{"query"},
				},
			},
		},
	}
	model.Tools = []*genai.Tool{sqlTool}

	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(fmt.Sprintf(`
			You are the Pastelería Mil Sabores shop assistant.
			Access: MySQL database (run_readonly_sql).
			Schema: %s
			Rules: SELECT only. Prices are integer Chilean pesos. Be concise and friendly.
		`, schemaDefinition))},
	}

	cs := model.StartChat()
	res, err := cs.SendMessage(ctx, genai.Text(userMessage))
	if err != nil {
		return "", fmt.Errorf("error sending message: %w", err)
	}

	// Loop for Function Calls
	for {
		if len(res.Candidates) == 0 || len(res.Candidates[0].Content.Parts) == 0 {
			return "No response.", nil
		}
		part := res.Candidates[0].Content.Parts[0]

		funcCall, ok := part.(genai.FunctionCall)
		if !ok {
			// It's text. We're done.
			return fmt.Sprintf("%v", part), nil
		}

		if funcCall.Name != "run_readonly_sql" {
			return "", fmt.Errorf("model requested unknown tool %q", funcCall.Name)
		}

		query, ok := funcCall.Args["query"].(string)
		if !ok {
			return "", fmt.Errorf("invalid query argument")
		}
		log.Printf("Assistant running SQL: %s", query)

		sqlResult, sqlErr := s.runReadOnlyQuery(query)
		if sqlErr != nil {
			sqlResult = fmt.Sprintf("SQL Error: %v", sqlErr)
		}

		res, err = cs.SendMessage(ctx, genai.FunctionResponse{
			Name:     "run_readonly_sql",
			Response: map[string]interface{}{"result": sqlResult},
		})
		if err != nil {
			return "", fmt.Errorf("tool response error: %w", err)
		}
	}
}

// schemaDefinition is the catalog subset the assistant is allowed to see.
// Users, password hashes and customer contact data are deliberately absent.
const schemaDefinition = `
	products(id, name, description, category_code, price, stock_quantity, personalizable, status)
	  category_code: TC=Tortas Cuadradas, TT=Tortas Circulares, PI=Postres Individuales,
	  PSA=Sin Azucar, PT=Tradicional, PG=Sin Gluten, PV=Veganos, TE=Especiales
	blog_posts(id, title, author, published_at)
`

// runReadOnlyQuery executes a SELECT on the read-only pool and renders the
// rows as JSON for the model.
func (s *Service) runReadOnlyQuery(query string) (string, error) {
	trimmed := strings.TrimSpace(strings.ToUpper(query))
	if !strings.HasPrefix(trimmed, "SELECT") {
		return "", fmt.Errorf("only SELECT queries are allowed")
	}

	rows, err := s.DB.Query(query)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return "", err
	}

	var results []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return "", err
		}

		row := make(map[string]interface{}, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	out, err := json.Marshal(results)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
