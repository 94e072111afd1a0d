package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"placement-cell-backend/internal/domain"
	"placement-cell-backend/pkg/apperror"
	"placement-cell-backend/pkg/logger"
)

const tokenLifetime = 24 * time.Hour

type authUsecase struct {
	adminRepo   domain.AdminRepository
	companyRepo domain.CompanyRepository
	studentRepo domain.StudentRepository
	jwtSecret   []byte
	emailDomain string
}

// NewAuthUsecase wires the three principal repositories behind the
// shared login flow. emailDomain restricts student sign-ins to the
// institution's Google Workspace accounts.
func NewAuthUsecase(
	adminRepo domain.AdminRepository,
	companyRepo domain.CompanyRepository,
	studentRepo domain.StudentRepository,
	jwtSecret string,
	emailDomain string,
) domain.AuthUsecase {
	return &authUsecase{
		adminRepo:   adminRepo,
		companyRepo: companyRepo,
		studentRepo: studentRepo,
		jwtSecret:   []byte(jwtSecret),
		emailDomain: emailDomain,
	}
}

func (u *authUsecase) LoginWithGoogle(ctx context.Context, role domain.Role, profile domain.GoogleProfile) (*domain.AuthResult, error) {
	if profile.Subject == "" || profile.Email == "" {
		return nil, apperror.Unauthorized("Google profile is incomplete")
	}

	var info *domain.PrincipalInfo
	var err error
	switch role {
	case domain.RoleAdmin:
		info, err = u.loginAdmin(ctx, profile)
	case domain.RoleCompany:
		info, err = u.loginCompany(ctx, profile)
	case domain.RoleStudent:
		info, err = u.loginStudent(ctx, profile)
	default:
		return nil, apperror.BadRequest("Unknown role")
	}
	if err != nil {
		return nil, err
	}

	token, err := u.mintToken(info.ID, info.Role)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	logger.Log.Info("login", "role", info.Role, "id", info.ID.Hex())
	return &domain.AuthResult{Token: token, Principal: info}, nil
}

func (u *authUsecase) loginAdmin(ctx context.Context, profile domain.GoogleProfile) (*domain.PrincipalInfo, error) {
	admin, err := u.adminRepo.GetByGoogleID(ctx, profile.Subject)
	if err == domain.ErrNotFound {
		admin = &domain.Admin{
			GoogleID: profile.Subject,
			Name:     profile.Name,
			Email:    profile.Email,
		}
		err = u.adminRepo.Create(ctx, admin)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.PrincipalInfo{ID: admin.ID, Name: admin.Name, Email: admin.Email, Role: domain.RoleAdmin}, nil
}

func (u *authUsecase) loginCompany(ctx context.Context, profile domain.GoogleProfile) (*domain.PrincipalInfo, error) {
	company, err := u.companyRepo.GetByGoogleID(ctx, profile.Subject)
	if err == domain.ErrNotFound {
		company = &domain.Company{
			GoogleID: profile.Subject,
			Name:     profile.Name,
			Email:    profile.Email,
		}
		err = u.companyRepo.Create(ctx, company)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.PrincipalInfo{ID: company.ID, Name: company.Name, Email: company.Email, Role: domain.RoleCompany}, nil
}

func (u *authUsecase) loginStudent(ctx context.Context, profile domain.GoogleProfile) (*domain.PrincipalInfo, error) {
	local, emailDomain, ok := strings.Cut(strings.ToLower(profile.Email), "@")
	if !ok || emailDomain != u.emailDomain {
		return nil, apperror.Forbidden("Only institutional email accounts may sign in as students")
	}

	student, err := u.studentRepo.GetByGoogleID(ctx, profile.Subject)
	if err == domain.ErrNotFound {
		student = &domain.Student{
			GoogleID:   profile.Subject,
			Name:       profile.Name,
			Email:      strings.ToLower(profile.Email),
			RollNumber: local,
		}
		err = u.studentRepo.Create(ctx, student)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.PrincipalInfo{ID: student.ID, Name: student.Name, Email: student.Email, Role: domain.RoleStudent}, nil
}

func (u *authUsecase) CurrentPrincipal(ctx context.Context, p domain.Principal) (*domain.PrincipalInfo, error) {
	switch p.Role {
	case domain.RoleAdmin:
		admin, err := u.adminRepo.GetByID(ctx, p.ID)
		if err != nil {
			return nil, apperror.Unauthorized("Account no longer exists")
		}
		return &domain.PrincipalInfo{ID: admin.ID, Name: admin.Name, Email: admin.Email, Role: domain.RoleAdmin}, nil
	case domain.RoleCompany:
		company, err := u.companyRepo.GetByID(ctx, p.ID)
		if err != nil {
			return nil, apperror.Unauthorized("Account no longer exists")
		}
		return &domain.PrincipalInfo{ID: company.ID, Name: company.Name, Email: company.Email, Role: domain.RoleCompany}, nil
	case domain.RoleStudent:
		student, err := u.studentRepo.GetByID(ctx, p.ID)
		if err != nil {
			return nil, apperror.Unauthorized("Account no longer exists")
		}
		return &domain.PrincipalInfo{ID: student.ID, Name: student.Name, Email: student.Email, Role: domain.RoleStudent}, nil
	default:
		return nil, apperror.Unauthorized("Unknown role")
	}
}

func (u *authUsecase) mintToken(id primitive.ObjectID, role domain.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  id.Hex(),
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(tokenLifetime).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.jwtSecret)
}
