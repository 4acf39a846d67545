package session

// Notification titles and descriptions.
const (
	titleLoginSuccess   = "Login successful"
	titleLoginFailed    = "Login failed"
	titleAccountCreated = "Account created"
	titleSignupFailed   = "Signup failed"
	titleProfileUpdated = "Profile updated"
	titleUpdateFailed   = "Update failed"
	titleLoggedOut      = "Logged out"
	titleClientAdded    = "Client added"
	titleAddFailed      = "Could not add client"
	titleFetchFailed    = "Could not load clients"

	msgWelcomeBack     = "Welcome back, %s!"
	msgAccountCreated  = "Your account has been created successfully"
	msgProfileUpdated  = "Your profile has been updated successfully"
	msgLoggedOut       = "You have been logged out successfully"
	msgClientAdded     = "%s was added to your clients"
	msgUpdateNoSession = "You must be logged in to update your profile"
	msgClientNoSession = "You must be logged in to manage clients"
	msgSessionChanged  = "You were logged out before the operation completed"
)

// Operation names used in errors and log entries.
const (
	OpRestore       = "restore"
	OpLogin         = "login"
	OpSignup        = "signup"
	OpLogout        = "logout"
	OpUpdateProfile = "update_profile"
	OpFetchClients  = "fetch_clients"
	OpAddClient     = "add_client"
)
