package repositories

import (
	"errors"

	"brandlink_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrContestNotFound = errors.New("contest not found")
	ErrProjectNotFound = errors.New("project not found")
)

// TargetRepository covers both kinds of application targets. Contests and
// projects share the applicant counter semantics, so the counter helpers
// dispatch on target type.
type TargetRepository interface {
	CreateContest(contest *models.Contest) error
	FindContestByID(id string) (*models.Contest, error)
	UpdateContest(contest *models.Contest) error

	CreateProject(project *models.Project) error
	FindProjectByID(id string) (*models.Project, error)
	UpdateProject(project *models.Project) error

	IncrementApplicantCount(targetType models.TargetType, targetID string) error
	DecrementApplicantCount(targetType models.TargetType, targetID string) error
	OwnerOf(targetType models.TargetType, targetID string) (string, error)
	WithTx(tx *gorm.DB) TargetRepository
}

type TargetRepositoryImpl struct {
	db *gorm.DB
}

func NewTargetRepository(db *gorm.DB) TargetRepository {
	return &TargetRepositoryImpl{db: db}
}

func (r *TargetRepositoryImpl) WithTx(tx *gorm.DB) TargetRepository {
	return &TargetRepositoryImpl{db: tx}
}

func (r *TargetRepositoryImpl) CreateContest(contest *models.Contest) error {
	return r.db.Create(contest).Error
}

func (r *TargetRepositoryImpl) FindContestByID(id string) (*models.Contest, error) {
	var contest models.Contest
	err := r.db.First(&contest, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContestNotFound
		}
		return nil, err
	}
	return &contest, nil
}

func (r *TargetRepositoryImpl) UpdateContest(contest *models.Contest) error {
	return r.db.Save(contest).Error
}

func (r *TargetRepositoryImpl) CreateProject(project *models.Project) error {
	return r.db.Create(project).Error
}

func (r *TargetRepositoryImpl) FindProjectByID(id string) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *TargetRepositoryImpl) UpdateProject(project *models.Project) error {
	return r.db.Save(project).Error
}

func (r *TargetRepositoryImpl) IncrementApplicantCount(targetType models.TargetType, targetID string) error {
	return r.adjustApplicantCount(targetType, targetID, "applicant_count + 1")
}

// DecrementApplicantCount clamps at zero so repeated cancellations can never
// drive the counter negative.
func (r *TargetRepositoryImpl) DecrementApplicantCount(targetType models.TargetType, targetID string) error {
	return r.adjustApplicantCount(targetType, targetID, "CASE WHEN applicant_count > 0 THEN applicant_count - 1 ELSE 0 END")
}

func (r *TargetRepositoryImpl) adjustApplicantCount(targetType models.TargetType, targetID string, expr string) error {
	var result *gorm.DB
	switch targetType {
	case models.TargetTypeContest:
		result = r.db.Model(&models.Contest{}).Where("id = ?", targetID).
			Update("applicant_count", gorm.Expr(expr))
	case models.TargetTypeProject:
		result = r.db.Model(&models.Project{}).Where("id = ?", targetID).
			Update("applicant_count", gorm.Expr(expr))
	default:
		return errors.New("unknown target type")
	}

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if targetType == models.TargetTypeContest {
			return ErrContestNotFound
		}
		return ErrProjectNotFound
	}
	return nil
}

func (r *TargetRepositoryImpl) OwnerOf(targetType models.TargetType, targetID string) (string, error) {
	switch targetType {
	case models.TargetTypeContest:
		contest, err := r.FindContestByID(targetID)
		if err != nil {
			return "", err
		}
		return contest.OwnerID, nil
	case models.TargetTypeProject:
		project, err := r.FindProjectByID(targetID)
		if err != nil {
			return "", err
		}
		return project.OwnerID, nil
	default:
		return "", errors.New("unknown target type")
	}
}
