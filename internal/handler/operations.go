package handler

import (
	"net/http"

	"github.com/tweesky/treedoc/internal/apidoc"
	"github.com/tweesky/treedoc/internal/apierr"
	"github.com/tweesky/treedoc/internal/auth"
	"github.com/tweesky/treedoc/internal/model"
)

// Operation IDs of the documented API.
const (
	OpGetVersion           = "getVersion"
	OpGetMarkdown          = "getMarkdown"
	OpGetTree              = "getTree"
	OpGetTreeByQueryParam  = "getTreeByQueryParam"
	OpGetTreeByHeaderParam = "getTreeByHeaderParam"
	OpGetTreeByEnumParam   = "getTreeByEnumParam"
	OpGetTreeByCookieParam = "getTreeByCookieParam"
	OpGetTreeByName        = "getTreeByName"
	OpGetTrees             = "getTrees"
	OpCreateTree           = "createTree"
	OpGetRandomNumber      = "getRandomNumber"
)

// Operation tags.
const (
	TagInfo  = "info"
	TagTrees = "trees"
)

// treeEnumParam is both documented and enforced by GetTreeByEnumParam.
var treeEnumParam = apidoc.ParameterSpec{
	Name:        ParamID,
	In:          apidoc.InQuery,
	Description: "ID of the tree, restricted to the catalog",
	Type:        apidoc.TypeString,
	Enum:        []string{"1", "2", "3"},
	Default:     "1",
	Example:     "2",
}

const markdownDescription = `Operation showing how **Markdown** renders in the explorer.

## Features

* lists
* *emphasis* and **strong** text
* ` + "`inline code`" + `

| Column | Value |
|--------|-------|
| table  | yes   |

[Markdown guide](https://www.markdownguide.org/basic-syntax/)`

// Operations returns the descriptors of every documented operation, in
// document order.
func Operations() []apidoc.OperationDescriptor {
	return []apidoc.OperationDescriptor{
		{
			ID:          OpGetVersion,
			Method:      http.MethodGet,
			Path:        "/version",
			Summary:     "Returns the API version",
			Description: "GET endpoint with no parameters and no security.",
			Tags:        []string{TagInfo},
			Responses: map[int]apidoc.ResponseSpec{
				http.StatusOK: textResponse("returns API version", APIVersion),
			},
		},
		{
			ID:          OpGetMarkdown,
			Method:      http.MethodGet,
			Path:        "/markdown",
			Summary:     "Markdown in descriptions",
			Description: markdownDescription,
			Tags:        []string{TagInfo},
			Responses: map[int]apidoc.ResponseSpec{
				http.StatusOK: textResponse("returns ok", "ok"),
			},
		},
		{
			ID:           OpGetTree,
			Method:       http.MethodGet,
			Path:         "/tree/{id}",
			Summary:      "Gets a Tree",
			Description:  "GET endpoint with path and query parameters",
			Tags:         []string{TagTrees},
			RequiresAuth: true,
			Parameters: []apidoc.ParameterSpec{
				{Name: ParamID, In: apidoc.InPath, Required: true, Type: apidoc.TypeInteger, Description: "ID of the tree", Example: "1"},
				{Name: ParamExtended, In: apidoc.InQuery, Type: apidoc.TypeBoolean, Description: "when true fetch all attributes", Example: "true"},
			},
			Responses: authResponses(treeResponse("returns a Tree", model.SampleTree(1).Extended()), MsgIDNotInteger),
		},
		{
			ID:           OpGetTreeByQueryParam,
			Method:       http.MethodGet,
			Path:         "/treeQueryParam",
			Summary:      "Gets a Tree by query parameter",
			Description:  "GET endpoint reading the id from the query string",
			Tags:         []string{TagTrees},
			RequiresAuth: true,
			Parameters: []apidoc.ParameterSpec{
				{Name: ParamID, In: apidoc.InQuery, Required: true, Type: apidoc.TypeInteger, Description: "ID of the tree", Example: "1"},
				{Name: ParamIdentifier, In: apidoc.InQuery, Deprecated: true, Type: apidoc.TypeInteger, Description: "ID of the tree, use id instead"},
			},
			Responses: authResponses(treeResponse("returns a Tree", model.SampleTree(1)), MsgIDMissing),
		},
		{
			ID:           OpGetTreeByHeaderParam,
			Method:       http.MethodGet,
			Path:         "/treeHeaderParam",
			Summary:      "Gets a Tree by header parameter",
			Description:  "GET endpoint reading the id from a request header",
			Tags:         []string{TagTrees},
			RequiresAuth: true,
			Parameters: []apidoc.ParameterSpec{
				{Name: TreeIDHeader, In: apidoc.InHeader, Type: apidoc.TypeInteger, Description: "ID of the tree", Example: "1"},
			},
			Responses: authResponses(treeResponse("returns a Tree", model.SampleTree(1)), MsgIDNotInteger),
		},
		{
			ID:           OpGetTreeByEnumParam,
			Method:       http.MethodGet,
			Path:         "/treeEnumParam",
			Summary:      "Gets a Tree by enum parameter",
			Description:  "GET endpoint accepting a fixed set of values",
			Tags:         []string{TagTrees},
			RequiresAuth: true,
			Parameters:   []apidoc.ParameterSpec{treeEnumParam},
			Responses:    authResponses(treeResponse("returns a Tree from the catalog", model.Catalog()[1]), "id must be one of "+treeEnumParam.EnumList()),
		},
		{
			ID:           OpGetTreeByCookieParam,
			Method:       http.MethodGet,
			Path:         "/treeCookieParam",
			Summary:      "Gets a Tree by cookie parameter",
			Description:  "GET endpoint reading a cookie",
			Tags:         []string{TagTrees},
			RequiresAuth: true,
			Parameters: []apidoc.ParameterSpec{
				{Name: TreeIDCookie, In: apidoc.InCookie, Type: apidoc.TypeString, Description: "ID of the tree", Example: "1"},
			},
			Responses: authResponses(treeResponse("returns a Tree", model.SampleTree(1)), ""),
		},
		{
			ID:           OpGetTreeByName,
			Method:       http.MethodGet,
			Path:         "/tree/by-name/{name}",
			Summary:      "Gets a Tree by name",
			Description:  "Deprecated GET endpoint with a path parameter",
			Tags:         []string{TagTrees},
			RequiresAuth: true,
			Deprecated:   true,
			Parameters: []apidoc.ParameterSpec{
				{Name: ParamName, In: apidoc.InPath, Required: true, Type: apidoc.TypeString, Description: "Name of the tree", Example: "Dragon tree"},
			},
			Responses: authResponses(treeResponse("returns a Tree", model.SampleTree(1)), MsgNameMalformed),
		},
		{
			ID:           OpGetTrees,
			Method:       http.MethodGet,
			Path:         "/trees",
			Summary:      "Gets array of Tree",
			Description:  "GET endpoint returning arrays of entities",
			Tags:         []string{TagTrees},
			RequiresAuth: true,
			Responses: authResponses(apidoc.ResponseSpec{
				Description: "returns all trees",
				ContentType: apidoc.ContentJSON,
				Schema:      apidoc.Component(SchemaTreeList),
				Example:     apidoc.Example(model.TreeList{Trees: model.Catalog()}),
			}, ""),
		},
		{
			ID:           OpCreateTree,
			Method:       http.MethodPost,
			Path:         "/tree",
			Summary:      "Creates a Tree",
			Description:  "POST endpoint",
			Tags:         []string{TagTrees},
			RequiresAuth: true,
			RequestBody: &apidoc.BodySpec{
				Description: "JSON payload with the tree attributes",
				Required:    true,
				ContentType: apidoc.ContentJSON,
				Schema:      apidoc.Component(SchemaNewTree),
				Example: apidoc.Example(map[string]any{
					"url":        "https://example.com/dragon-tree",
					"title":      "Dragon tree",
					"image":      "https://example.com/dragon-tree.png",
					"name":       "Dragon tree",
					"max_height": "15m",
					"endangered": true,
				}),
			},
			Responses: authResponses(apidoc.ResponseSpec{
				Description: "returns id of the newly planted Tree",
				ContentType: apidoc.ContentText,
				Schema:      apidoc.Primitive(apidoc.TypeString),
				Example:     "01J9Z8Q6W6M3G2D4V7K1T5XH0P",
			}, MsgURLMissing),
		},
		{
			ID:           OpGetRandomNumber,
			Method:       http.MethodGet,
			Path:         "/random",
			Summary:      "Returns a random number",
			Description:  "GET endpoint documenting multiple response codes",
			Tags:         []string{TagInfo},
			RequiresAuth: true,
			Responses: authResponses(apidoc.ResponseSpec{
				Description: "returns a random number between 0 and 1000",
				ContentType: apidoc.ContentJSON,
				Schema:      apidoc.Primitive(apidoc.TypeInteger),
				Example:     apidoc.Example(111),
			}, ""),
		},
	}
}

// NewRegistry builds the registry of documented operations.
func NewRegistry() (apidoc.Registry, error) {
	return apidoc.NewRegistry(Schemas(), Operations()...)
}

// DocumentInfo returns the document metadata published at serverURL.
func DocumentInfo(serverURL string) apidoc.Info {
	return apidoc.Info{
		Title:             "OpenAPI Sample with Go",
		Description:       "Sample application showing OpenAPI configuration",
		Version:           APIVersion,
		TermsOfService:    "https://github.com/tweesky/treedoc/blob/main/README.md",
		ServerURL:         serverURL,
		ServerDescription: "dev",
		BearerScheme:      auth.SecuritySchemeName,
		Tags: []apidoc.Tag{
			{Name: TagInfo, Description: "Utility endpoints"},
			{Name: TagTrees, Description: "The Tree resource"},
		},
	}
}

func textResponse(description, example string) apidoc.ResponseSpec {
	return apidoc.ResponseSpec{
		Description: description,
		ContentType: apidoc.ContentText,
		Schema:      apidoc.Primitive(apidoc.TypeString),
		Example:     example,
	}
}

func treeResponse(description string, example model.Tree) apidoc.ResponseSpec {
	return apidoc.ResponseSpec{
		Description: description,
		ContentType: apidoc.ContentJSON,
		Schema:      apidoc.Component(SchemaTree),
		Example:     apidoc.Example(example),
	}
}

func errorResponse(description, example string) apidoc.ResponseSpec {
	return apidoc.ResponseSpec{
		Description: description,
		ContentType: apidoc.ContentJSON,
		Schema:      apidoc.Component(apidoc.ErrorSchemaName),
		Example:     apidoc.Example(apierr.Response{Error: example}),
	}
}

// authResponses adds the 401 response of bearer protected operations and,
// when badRequest is set, a 400 response with that message as example.
func authResponses(ok apidoc.ResponseSpec, badRequest string) map[int]apidoc.ResponseSpec {
	out := map[int]apidoc.ResponseSpec{
		http.StatusOK:           ok,
		http.StatusUnauthorized: errorResponse("Unauthorized. Token is missing or invalid", auth.MsgMissingToken),
	}
	if badRequest != "" {
		out[http.StatusBadRequest] = errorResponse("Bad request. Parameter is missing or malformed", badRequest)
	}
	return out
}
