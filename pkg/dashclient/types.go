package dashclient

import "time"

// User mirrors the API's user shape. The password hash never appears here.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SignupData is the signup request payload.
type SignupData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
}

// Project mirrors the API's project shape.
type Project struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Tags               []string  `json:"tags"`
	ProjectManager     string    `json:"project_manager"`
	ProjectManagerName *string   `json:"project_manager_name,omitempty"`
	Deadline           time.Time `json:"deadline"`
	Priority           string    `json:"priority"`
	ImageURL           *string   `json:"image_url,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CreateProjectData is the project creation payload.
type CreateProjectData struct {
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Tags           []string  `json:"tags"`
	ProjectManager string    `json:"project_manager"`
	Deadline       time.Time `json:"deadline"`
	Priority       string    `json:"priority"`
	ImageURL       *string   `json:"image_url,omitempty"`
}

// AuthResult carries the outcome of a successful signup or login.
type AuthResult struct {
	User  *User
	Token string
}

type authResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    *User  `json:"user"`
	Token   string `json:"token"`
}

type verifyResponse struct {
	Success bool  `json:"success"`
	User    *User `json:"user"`
}

type projectResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Project *Project `json:"project"`
}

type projectsResponse struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	Projects []Project `json:"projects"`
}

type usersResponse struct {
	Success bool   `json:"success"`
	Users   []User `json:"users"`
}
