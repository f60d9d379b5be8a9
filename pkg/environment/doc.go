// Package environment names the deployment environment (development, staging,
// production) and carries it through context.Context and HTTP requests.
//
// Parse accepts the canonical names and the aliases "stage" and "prod";
// anything else is development. The resulting Environment selects the logger
// preset and forces the Secure flag on session cookies in production.
//
// # Usage
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//
//	r.Use(environment.Middleware(env))
//
//	if environment.IsProduction(r.Context()) {
//	    // ...
//	}
package environment
