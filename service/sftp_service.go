package service

import (
	"bytes"
	"fmt"
	"path"
	"time"

	"payexsync/config"

	"github.com/pkg/sftp"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"
)

// SFTPService archives reports on the accounting SFTP server.
type SFTPService struct {
	cfg    SFTPConfig
	logger *zap.Logger
}

type SFTPConfig struct {
	Host       string
	Port       string
	User       string
	Pass       string
	RemotePath string
}

func NewSFTPService(logger *zap.Logger) *SFTPService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SFTPService{
		cfg: SFTPConfig{
			Host:       config.Config("SFTP_HOST", ""),
			Port:       config.Config("SFTP_PORT", "22"),
			User:       config.Config("SFTP_USER", ""),
			Pass:       config.Config("SFTP_PASS", ""),
			RemotePath: config.Config("SFTP_REMOTE_PATH", "/reports/payex"),
		},
		logger: logger,
	}
}

func (s *SFTPService) Enabled() bool {
	return s.cfg.Host != "" && s.cfg.User != ""
}

func (s *SFTPService) dial() (*ssh.Client, *sftp.Client, error) {
	sshConfig := &ssh.ClientConfig{
		User:            s.cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(s.cfg.Pass)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         30 * time.Second,
	}

	sshClient, err := ssh.Dial("tcp", fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port), sshConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to SFTP server: %w", err)
	}

	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		sshClient.Close()
		return nil, nil, fmt.Errorf("failed to create SFTP client: %w", err)
	}
	return sshClient, sftpClient, nil
}

// UploadFile writes fileData to RemotePath/fileName, creating the directory
// when missing.
func (s *SFTPService) UploadFile(fileName string, fileData []byte) error {
	sshClient, sftpClient, err := s.dial()
	if err != nil {
		return err
	}
	defer sshClient.Close()
	defer sftpClient.Close()

	if _, err := sftpClient.Stat(s.cfg.RemotePath); err != nil {
		if err := sftpClient.MkdirAll(s.cfg.RemotePath); err != nil {
			return fmt.Errorf("failed to create remote directory %s: %w", s.cfg.RemotePath, err)
		}
	}

	remoteFilePath := path.Join(s.cfg.RemotePath, fileName)
	remoteFile, err := sftpClient.Create(remoteFilePath)
	if err != nil {
		return fmt.Errorf("failed to create remote file: %w", err)
	}
	defer remoteFile.Close()

	written, err := remoteFile.ReadFrom(bytes.NewReader(fileData))
	if err != nil {
		return fmt.Errorf("failed to write to remote file: %w", err)
	}

	s.logger.Info("report uploaded",
		zap.String("host", s.cfg.Host),
		zap.String("path", remoteFilePath),
		zap.Int64("bytes", written))
	return nil
}
