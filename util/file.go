package util

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/segmentio/ksuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Exists 判断路径是否存在，Stat 失败（包括无权限）都视为不存在
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// OpenImage 打开本地图片，按 EXIF 方向自动旋转
func OpenImage(path string) (image.Image, error) {
	return imaging.Open(path, imaging.AutoOrientation(true))
}

// SaveImage 按扩展名决定编码格式保存图片，覆盖已有文件
//
// JPEG 不支持透明通道，透明区域会被铺成白底。
// 先写同目录下的临时文件再 rename，避免留下写了一半的输出。
// 目标是符号链接时写到链接指向的文件；已有文件保留原权限，新文件为 0644。
func SaveImage(img image.Image, path string) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("output format: %w", err)
	}
	if format == imaging.JPEG {
		img = flatten(img, color.White)
	}

	path = resolveTarget(path)
	mode := outputMode(path)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+ksuid.New().String()+"-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if err := imaging.Encode(tmp, img, format, imaging.JPEGQuality(95)); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encode %s: %w", format, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	return os.Rename(tmp.Name(), path)
}

// resolveTarget 跟随符号链接；链接悬空时按原路径处理
func resolveTarget(path string) string {
	fi, err := os.Lstat(path)
	if err != nil || fi.Mode()&os.ModeSymlink == 0 {
		return path
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}

func outputMode(path string) os.FileMode {
	if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
		return fi.Mode().Perm()
	}
	return 0o644
}

// flatten 把带 alpha 的图片叠加到纯色底上
func flatten(img image.Image, bg color.Color) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}
