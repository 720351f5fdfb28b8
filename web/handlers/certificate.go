package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jayelcee/internhq/infrastructure/communication"
	"github.com/jayelcee/internhq/infrastructure/filesystem"
	"github.com/jayelcee/internhq/model"
	"github.com/jayelcee/internhq/reports"
	"github.com/jayelcee/internhq/utils"
	"github.com/jayelcee/internhq/web/common"
	"github.com/jayelcee/internhq/web/middlewares"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type CertificateEndpoint struct {
	Handler
}

func RegisterCertificates(admin *gin.RouterGroup, base Handler) {
	endpoint := &CertificateEndpoint{Handler: base}
	admin.POST("/interns/:id/certificate", endpoint.Issue)
	admin.GET("/certificates", endpoint.List)
	admin.GET("/certificates/:id/download", endpoint.Download)
}

type CertificateIssueDTO struct {
	// Force lets an admin issue before the requirement is reached, e.g.
	// for an early-ended internship with credited hours.
	Force bool `json:"force"`
}

// Issue validates completion, records the certificate, and pushes the
// workbook to the archive bucket and the intern's mailbox when those are
// configured. Archive and mail failures degrade to a recorded certificate
// without them.
func (ep *CertificateEndpoint) Issue(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	claims := middlewares.CurrentIdentity(c)

	var dto CertificateIssueDTO
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&dto); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
			return
		}
	}

	st := ep.GetStore(c)
	user, err := st.FindUserByID(id)
	if err != nil {
		RespondStoreError(c, err)
		return
	}

	existing, err := st.CertificateForUser(id)
	if err != nil {
		RespondStoreError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, common.NewErrorResponse("certificate already issued"))
		return
	}

	progress, err := internProgress(st, id)
	if err != nil {
		RespondStoreError(c, err)
		return
	}
	if !progress.Completed && !dto.Force {
		c.JSON(http.StatusConflict, common.NewErrorResponse(
			fmt.Sprintf("required hours not reached: %.2f of %.2f", progress.CountedHours, progress.RequiredHours)))
		return
	}

	now := utils.ManilaNow()
	cert := model.Certificate{
		UserID:        id,
		SerialNo:      fmt.Sprintf("IHQ-%d-%04d", now.Year(), id),
		RegularHours:  progress.RegularHours,
		OvertimeHours: progress.OvertimeHours + progress.ExtendedHours,
		TotalHours:    progress.CountedHours,
		IssuedBy:      claims.UserID,
		IssuedAt:      now,
	}

	f, err := reports.BuildCertificateWorkbook(&cert, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	workbook, err := reports.WorkbookBytes(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	if bucket := ep.Cfg.Buckets.Archive; bucket != "" {
		key := fmt.Sprintf("certificates/%s.xlsx", cert.SerialNo)
		if err := filesystem.WriteFile(bucket, key, c.Request.Context(), workbook, xlsxContentType); err == nil {
			cert.ObjectKey = &key
		} else {
			ep.Notify(func(s *communication.Slack) error {
				return s.Error(fmt.Sprintf("certificate archive failed for %s: %v", cert.SerialNo, err))
			})
		}
	}

	if err := st.CreateCertificate(&cert); err != nil {
		RespondStoreError(c, err)
		return
	}
	if err := st.UpdateUser(id, map[string]interface{}{"status": model.UserCompleted}); err != nil {
		RespondStoreError(c, err)
		return
	}

	if sender := ep.Cfg.Mail.Sender; sender != "" {
		if err := communication.SendCertificateIssued(
			c.Request.Context(), sender, user.Email, user.FullName(), cert.SerialNo, workbook); err != nil {
			ep.Notify(func(s *communication.Slack) error {
				return s.Error(fmt.Sprintf("certificate mail failed for %s: %v", cert.SerialNo, err))
			})
		}
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(cert))
}

func (ep *CertificateEndpoint) List(c *gin.Context) {
	certs, err := ep.GetStore(c).ListCertificates()
	if err != nil {
		RespondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSearchResponse(certs, int64(len(certs))))
}

// Download rebuilds the workbook from the stored record and streams it.
func (ep *CertificateEndpoint) Download(c *gin.Context) {
	cert, err := ep.GetStore(c).FindCertificate(c.Param("id"))
	if err != nil {
		RespondStoreError(c, err)
		return
	}

	f, err := reports.BuildCertificateWorkbook(cert, &cert.User)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("certificate-%s.xlsx", cert.SerialNo)))
	c.Header("Content-Type", xlsxContentType)
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
