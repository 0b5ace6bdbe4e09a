package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")

	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	ErrEmailTaken       = errors.New("email already registered")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrPasswordMismatch = errors.New("passwords must match")
	ErrCompanyNotFound  = errors.New("company not found")

	ErrJobNotFound         = errors.New("job not found")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrSkillNotFound       = errors.New("skill not found")
	ErrSkillNameTaken      = errors.New("skill name already exists")
	ErrUnknownSkills       = errors.New("some skills were not found")
	ErrInvalidCategory     = errors.New("invalid skill category")
	ErrNegativeSalary      = errors.New("salary cannot be negative")
	ErrInvalidPhone        = errors.New("phone number must start with '+'")
	ErrApplicationNotFound = errors.New("application not found")

	// Application intake preconditions, each a distinct reportable reason.
	ErrNotJobSeeker    = errors.New("only job seekers can apply for jobs")
	ErrJobNotAccepting = errors.New("this job is no longer accepting applications")
	ErrAlreadyApplied  = errors.New("you have already applied for this job")

	// Employer job management authorization.
	ErrOnlyEmployersPost = errors.New("only employers can post jobs")
	ErrPostingNotAllowed = errors.New("you don't have permission to post jobs")
	ErrNotJobOwner       = errors.New("you don't have permission to modify this job")
	ErrNotEmployer       = errors.New("only employers can access this resource")
)
