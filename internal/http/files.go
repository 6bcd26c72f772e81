package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/opsview/dashboard-service/internal/archive"
	"github.com/opsview/dashboard-service/internal/config"
	"github.com/opsview/dashboard-service/internal/http/dto"
	"github.com/opsview/dashboard-service/internal/util"
)

const timeoutAdvice = "Download timed out. Request fewer transactions or use a lifecycle filter to narrow results."

func writeArchive(c echo.Context, out archive.BatchOutput, zipName string) error {
	resultsJSON, err := json.Marshal(out.Results)
	if err != nil {
		return writeError(c, http.StatusInternalServerError, "Internal server error")
	}
	h := c.Response().Header()
	h.Set("Content-Disposition", `attachment; filename="`+zipName+`"`)
	h.Set("Content-Length", strconv.Itoa(len(out.Zip)))
	h.Set("X-File-Count", strconv.Itoa(out.TotalFiles))
	h.Set("X-Transaction-Results", string(resultsJSON))
	return c.Blob(http.StatusOK, "application/zip", out.Zip)
}

// DownloadTransaction — collect every document of the named
// transactions into one zip
// @Summary     Download all files for up to 20 transactions
// @Tags        files
// @Accept      json
// @Produce     application/zip
// @Param       request body dto.DownloadTransactionRequest true "Transactions"
// @Success     200 {file} binary
// @Failure     400 {object} APIError
// @Failure     404 {object} APIError
// @Failure     504 {object} APIError
// @Router      /files/download-transaction [post]
func DownloadTransaction(collector *archive.Collector, cfg config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.DownloadTransactionRequest
		if err := c.Bind(&req); err != nil {
			return writeError(c, http.StatusBadRequest, "malformed request")
		}
		if err := req.Validate(); err != nil {
			status, body := MapError(err)
			return writeJSON(c, status, body)
		}

		jobID := uuid.New().String()
		log.Printf("files: job %s: collecting %d transaction(s)", jobID, len(req.TransactionIDs))

		ctx, cancel := context.WithTimeout(c.Request().Context(), cfg.DownloadTimeout)
		defer cancel()
		out, err := collector.CollectMany(ctx, req.TransactionIDs)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return writeError(c, http.StatusGatewayTimeout, timeoutAdvice)
			}
			status, body := MapError(err)
			return writeJSON(c, status, body)
		}

		if out.TotalFiles == 0 {
			body := apiError("No files found for the provided transaction(s)")
			body.Details = out.Results
			return writeJSON(c, http.StatusNotFound, body)
		}

		zipName := "transactions-" + strconv.Itoa(len(req.TransactionIDs)) + ".zip"
		if len(req.TransactionIDs) == 1 {
			name := out.Results[0].Address
			if name == "" {
				name = req.TransactionIDs[0]
			}
			zipName = util.SanitizeName(name) + ".zip"
		}
		return writeArchive(c, out, zipName)
	}
}

// DownloadAgent — resolve an agent's transactions and zip their files
// @Summary     Download all files across an agent's transactions
// @Tags        files
// @Accept      json
// @Produce     application/zip
// @Param       request body dto.DownloadAgentRequest true "Agent"
// @Success     200 {file} binary
// @Failure     400 {object} APIError
// @Failure     404 {object} APIError
// @Failure     504 {object} APIError
// @Router      /files/download-agent [post]
func DownloadAgent(collector *archive.Collector, agents archive.AgentSource, cfg config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.DownloadAgentRequest
		if err := c.Bind(&req); err != nil {
			return writeError(c, http.StatusBadRequest, "malformed request")
		}
		if err := req.Validate(); err != nil {
			status, body := MapError(err)
			return writeJSON(c, status, body)
		}

		jobID := uuid.New().String()
		ctx, cancel := context.WithTimeout(c.Request().Context(), cfg.DownloadTimeout)
		defer cancel()

		ids, err := archive.ResolveAgentTransactions(ctx, agents, req.YentaID, req.LifecycleFilter)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return writeError(c, http.StatusGatewayTimeout, timeoutAdvice)
			}
			status, body := MapError(err)
			return writeJSON(c, status, body)
		}
		if len(ids) == 0 {
			return writeError(c, http.StatusNotFound, "No transactions found for this agent")
		}
		if len(ids) > dto.MaxAgentTransactions {
			return writeError(c, http.StatusBadRequest,
				"Agent has "+strconv.Itoa(len(ids))+" transactions. Maximum supported is "+
					strconv.Itoa(dto.MaxAgentTransactions)+". Use a lifecycle filter to narrow results.")
		}
		log.Printf("files: job %s: agent %s resolved to %d transaction(s)", jobID, req.YentaID, len(ids))

		out, err := collector.CollectMany(ctx, ids)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return writeError(c, http.StatusGatewayTimeout, timeoutAdvice)
			}
			status, body := MapError(err)
			return writeJSON(c, status, body)
		}

		if out.TotalFiles == 0 {
			body := apiError("No downloadable files found across agent transactions")
			body.Details = out.Results
			return writeJSON(c, http.StatusNotFound, body)
		}

		c.Response().Header().Set("X-Transaction-Count", strconv.Itoa(len(ids)))
		zipName := "agent-" + shortYentaID(req.YentaID) + "-files.zip"
		return writeArchive(c, out, zipName)
	}
}

func shortYentaID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
