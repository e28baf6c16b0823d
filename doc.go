// Package authware is a pluggable request-authentication layer for HTTP
// services. It extracts a credential from inbound request headers, delegates
// validation to a replaceable strategy, and on failure short-circuits with a
// spec-compliant 401 challenge response.
//
// The stock strategy validates JWT bearer tokens against a remotely hosted,
// rotating JWKS key set:
//
//	provider, err := jwks.NewCachingProvider(ctx,
//	    jwks.WithJWKSURL("https://auth.example.com/.well-known/jwks.json"),
//	)
//	if err != nil {
//	    log.Fatalf("failed to fetch JWKS: %v", err)
//	}
//
//	jwtValidator, err := validator.New(
//	    validator.WithKeyProvider(provider),
//	    validator.WithIssuer("https://auth.example.com"),
//	    validator.WithAudience("https://mcp.example.com"),
//	)
//	if err != nil {
//	    log.Fatalf("failed to set up the validator: %v", err)
//	}
//
//	middleware, err := authware.New(
//	    authware.WithValidator(jwtValidator),
//	    authware.WithResourceServer(&oauth.ResourceServerConfig{
//	        ResourceMetadataURL: "https://mcp.example.com" + oauth.MetadataPath,
//	        DefaultScope:        "mcp:tools",
//	    }),
//	    authware.WithExclusionURLs([]string{oauth.MetadataPath}),
//	)
//	if err != nil {
//	    log.Fatalf("failed to set up the middleware: %v", err)
//	}
//
//	mux := http.NewServeMux()
//	mux.Handle(oauth.MetadataPath, metadataHandler)
//	mux.Handle("/", protectedHandler)
//	http.ListenAndServe(":8080", middleware.Handler(mux))
//
// Handlers read the authenticated claims from the request context:
//
//	claims, err := core.GetClaims[*validator.Claims](r.Context())
//
// API-key authentication swaps the extractor, custom schemes swap the whole
// authenticator; see core.HeaderExtractor and core.AuthenticatorFunc.
package authware
