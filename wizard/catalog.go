package wizard

import "github.com/andrewpaige1/coursemap-api/models"

// DefaultCatalog is the fixed course list for UTS BCS (Honours), Enterprise
// Software Development with the AWS sub-major.
func DefaultCatalog() []models.Course {
	return []models.Course{
		{ID: "31265", Name: "Web Systems", Category: models.CategoryCore, Major: "Enterprise Software Development"},
		{ID: "31266", Name: "Database Fundamentals", Category: models.CategoryCore, Major: "Enterprise Software Development"},
		{ID: "31267", Name: "Enterprise Software Architecture", Category: models.CategoryMajor, Major: "Enterprise Software Development"},
		{ID: "31268", Name: "AWS Cloud Development", Category: models.CategorySubMajor, SubMajor: "AWS Development"},
		{ID: "31269", Name: "AWS DevOps", Category: models.CategorySubMajor, SubMajor: "AWS Development"},
	}
}
