package v1

import (
	"encoding/json"
	"fmt"
	"time"
)

// Envelope mirrors the server's success wrapper.
type Envelope[T any] struct {
	Data T `json:"data"`
}

type SearchEnvelope[T any] struct {
	Data       []T `json:"data"`
	Pagination struct {
		Total int64 `json:"total"`
	} `json:"pagination"`
}

type TimeLogDTO struct {
	ID             string     `json:"id"`
	UserID         uint       `json:"userId"`
	Date           string     `json:"date"`
	TimeIn         *time.Time `json:"timeIn"`
	TimeOut        *time.Time `json:"timeOut"`
	LogType        string     `json:"logType"`
	OvertimeStatus string     `json:"overtimeStatus"`
}

type TimeLogEndpoint struct {
	transport *Transport
}

func (this *TimeLogEndpoint) ClockIn(deviceID string) (*TimeLogDTO, error) {
	payload := map[string]string{"deviceId": deviceID}

	resp, err := this.transport.Post("/api/v1/timelogs/clock-in", payload, nil)
	if err != nil {
		return nil, err
	}

	var result Envelope[*TimeLogDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (this *TimeLogEndpoint) ClockOut() (*TimeLogDTO, error) {
	resp, err := this.transport.Post("/api/v1/timelogs/clock-out", map[string]string{}, nil)
	if err != nil {
		return nil, err
	}

	var result Envelope[*TimeLogDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (this *TimeLogEndpoint) List(internID uint, from, to string) ([]TimeLogDTO, error) {
	query := map[string]string{}
	if from != "" && to != "" {
		query["from"] = from
		query["to"] = to
	}

	resp, err := this.transport.Get(fmt.Sprintf("/api/v1/interns/%d/timelogs", internID), query)
	if err != nil {
		return nil, err
	}

	var result SearchEnvelope[TimeLogDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

type DayDTO struct {
	Date                  string  `json:"date"`
	RegularHours          float64 `json:"regularHours"`
	OvertimeHours         float64 `json:"overtimeHours"`
	ExtendedOvertimeHours float64 `json:"extendedOvertimeHours"`
}

type DTRRangeDTO struct {
	Days []DayDTO `json:"days"`

	TotalRegularHours          float64 `json:"totalRegularHours"`
	TotalOvertimeHours         float64 `json:"totalOvertimeHours"`
	TotalExtendedOvertimeHours float64 `json:"totalExtendedOvertimeHours"`
}

type DTREndpoint struct {
	transport *Transport
}

func (this *DTREndpoint) Range(internID uint, from, to string) (*DTRRangeDTO, error) {
	resp, err := this.transport.Get(fmt.Sprintf("/api/v1/interns/%d/dtr", internID), map[string]string{
		"from": from,
		"to":   to,
	})
	if err != nil {
		return nil, err
	}

	var result Envelope[*DTRRangeDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

type CertificateDTO struct {
	ID         string    `json:"id"`
	UserID     uint      `json:"userId"`
	SerialNo   string    `json:"serialNo"`
	TotalHours float64   `json:"totalHours"`
	IssuedAt   time.Time `json:"issuedAt"`
}

type CertificateEndpoint struct {
	transport *Transport
}

func (this *CertificateEndpoint) List() ([]CertificateDTO, error) {
	resp, err := this.transport.Get("/api/v1/certificates", nil)
	if err != nil {
		return nil, err
	}

	var result SearchEnvelope[CertificateDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (this *CertificateEndpoint) Issue(internID uint, force bool) (*CertificateDTO, error) {
	payload := map[string]bool{"force": force}

	resp, err := this.transport.Post(fmt.Sprintf("/api/v1/interns/%d/certificate", internID), payload, nil)
	if err != nil {
		return nil, err
	}

	var result Envelope[*CertificateDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}
