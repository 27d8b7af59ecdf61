package generate

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// archiveArtifacts 把所有 PNG 产物打进一个 zip，条目路径保持
// 相对于暂存目录的层级（各尺寸一个子目录）。
func archiveArtifacts(zipPath, staging string, artifacts []Artifact) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("创建归档失败: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, art := range artifacts {
		if art.Kind != "png" {
			continue
		}
		if err := addFile(zw, staging, art.Path); err != nil {
			zw.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("关闭归档失败: %w", err)
	}
	return nil
}

func addFile(zw *zip.Writer, staging, path string) error {
	rel, err := filepath.Rel(staging, path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w, err := zw.Create(filepath.ToSlash(rel))
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("写入归档条目 %s 失败: %w", rel, err)
	}
	return nil
}
