package routes

var (
	RegisterDurationSecondsBuckets = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	LoginDurationSecondsBuckets    = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10}
)

const (
	// API route constants
	RootRoute          = "/"
	LandingENRoute     = "/en"
	LandingARRoute     = "/ar"
	LoginPageRoute     = "/login.html"
	RegisterPageRoute  = "/register.html"
	ProtectedPageRoute = "/protected.html"
	LogoutRoute        = "/logout"
	RegisterFormRoute  = "/register"
	LoginFormRoute     = "/login"
	HealthRoute        = "/healthz"
	MetricsRouteAPI    = "/metrics"
	FallbackRoute      = "/*"

	// page file names under the site root
	LandingENPage = "main_en.html"
	LandingARPage = "main_ar.html"
	LoginPage     = "login.html"
	RegisterPage  = "register.html"
	ProtectedPage = "protected.html"

	// Content-Type constants
	ContentType     = "Content-Type"
	ContentTypeHTML = "text/html; charset=utf-8"

	// message constants
	MsgRegistered        = "Registered successfully! You can login now."
	MsgMissingField      = "Missing username or password."
	MsgUsernameExists    = "Username already exists."
	MsgLoginFailed       = "Login failed"
	MsgStorageFailure    = "Something went wrong. Please try again later."
	MsgWelcomeFormat     = "Welcome %s"
	MsgHealthy           = "ok"
	MsgFileNotFound      = "The file is not found"
	ErrFailedToParseForm = "failed to parse form body"
	ErrFailedToReadPage  = "failed to read page"

	// metrics constants
	RegisterRequestsTotal       = "register_requests_total"
	RegisterRequestsTotalHelp   = "Total number of register requests received"
	RegisterSuccessTotal        = "register_success_total"
	RegisterSuccessTotalHelp    = "Total number of successful register requests"
	RegisterErrorsTotal         = "register_errors_total"
	RegisterErrorsTotalHelp     = "Total number of errors during register requests"
	RegisterDurationSeconds     = "register_duration_seconds"
	RegisterDurationSecondsHelp = "Duration of register requests in seconds"
	LoginRequestsTotal          = "login_requests_total"
	LoginRequestsTotalHelp      = "Total number of login requests received"
	LoginSuccessTotal           = "login_success_total"
	LoginSuccessTotalHelp       = "Total number of successful login requests"
	LoginFailedTotal            = "login_failed_total"
	LoginFailedTotalHelp        = "Total number of failed login requests"
	LoginDurationSeconds        = "login_duration_seconds"
	LoginDurationSecondsHelp    = "Duration of login requests in seconds"
	LoginRateLimitedTotal       = "login_rate_limited_total"
	LoginRateLimitedTotalHelp   = "Total number of login requests that were rate limited"
	NotFoundTotal               = "not_found_responses_total"
	NotFoundTotalHelp           = "Total number of themed 404 responses served"
)
