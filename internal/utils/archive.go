package utils

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// ErrPathTraversal 压缩包条目试图写出目标目录
var ErrPathTraversal = errors.New("archive entry escapes target directory")

// ExtractTarGz 将 gzip 压缩的 tar 包解压到 dest。
// dest 已存在时直接跳过（幂等）。
// 第一遍只读取条目头并校验路径，任何条目越界都会拒绝整个压缩包，此时不写入任何文件；
// 第二遍解压到 dest 同级的临时目录，成功后整体重命名为 dest。
func ExtractTarGz(archivePath, dest string) (extracted bool, err error) {
	if _, err := os.Stat(dest); err == nil {
		log.Printf("[Extractor] %s 已存在，跳过解压", dest)
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("检查目录失败: %w", err)
	}

	if err := validateTarGz(archivePath); err != nil {
		return false, err
	}

	parent := filepath.Dir(dest)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return false, fmt.Errorf("创建目录失败: %w", err)
	}
	staging, err := os.MkdirTemp(parent, "."+filepath.Base(dest)+"-*")
	if err != nil {
		return false, fmt.Errorf("创建临时目录失败: %w", err)
	}
	defer func() {
		if err != nil {
			os.RemoveAll(staging)
		}
	}()

	log.Printf("[Extractor] 开始解压 %s", archivePath)
	files, err := unpackTarGz(archivePath, staging)
	if err != nil {
		return false, err
	}
	if err = os.Rename(staging, dest); err != nil {
		return false, fmt.Errorf("重命名目录失败: %w", err)
	}
	log.Printf("[Extractor] 解压完成: %d 个文件 -> %s", files, dest)
	return true, nil
}

// SafeJoin 将条目名拼接到 root 下，越界时返回 ErrPathTraversal
func SafeJoin(root, name string) (string, error) {
	clean := filepath.FromSlash(strings.TrimPrefix(name, "./"))
	if clean == "" || clean == "." {
		return root, nil
	}
	if filepath.IsAbs(clean) || !filepath.IsLocal(clean) {
		return "", fmt.Errorf("%w: %q", ErrPathTraversal, name)
	}
	target := filepath.Join(root, clean)
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrPathTraversal, name)
	}
	return target, nil
}

func openTarGz(archivePath string) (*tar.Reader, func(), error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, nil, fmt.Errorf("打开压缩包失败: %w", err)
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("创建gzip读取器失败: %w", err)
	}
	closer := func() {
		gz.Close()
		f.Close()
	}
	return tar.NewReader(gz), closer, nil
}

// validateTarGz 只读校验所有条目
func validateTarGz(archivePath string) error {
	tr, closer, err := openTarGz(archivePath)
	if err != nil {
		return err
	}
	defer closer()

	// 虚拟根目录，只做路径计算
	root := filepath.Join(string(filepath.Separator), "archive-root")
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("读取压缩包失败: %w", err)
		}
		if _, err := SafeJoin(root, hdr.Name); err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeSymlink:
			// 链接目标相对于链接所在目录解析
			resolved := filepath.Join(filepath.Dir(filepath.FromSlash(hdr.Name)), filepath.FromSlash(hdr.Linkname))
			if filepath.IsAbs(hdr.Linkname) || !filepath.IsLocal(resolved) {
				return fmt.Errorf("%w: symlink %q -> %q", ErrPathTraversal, hdr.Name, hdr.Linkname)
			}
		case tar.TypeLink:
			if _, err := SafeJoin(root, hdr.Linkname); err != nil {
				return fmt.Errorf("%w: hardlink %q -> %q", ErrPathTraversal, hdr.Name, hdr.Linkname)
			}
		}
	}
}

// unpackTarGz 解压普通文件和目录，其余类型忽略
func unpackTarGz(archivePath, root string) (int, error) {
	tr, closer, err := openTarGz(archivePath)
	if err != nil {
		return 0, err
	}
	defer closer()

	files := 0
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return files, nil
		}
		if err != nil {
			return files, fmt.Errorf("读取压缩包失败: %w", err)
		}
		target, err := SafeJoin(root, hdr.Name)
		if err != nil {
			return files, err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return files, fmt.Errorf("创建目录失败: %w", err)
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return files, err
			}
			files++
		default:
			log.Printf("[Extractor] 忽略条目 %s (type %c)", hdr.Name, hdr.Typeflag)
		}
	}
}

func writeEntry(target string, r io.Reader, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}
	if perm == 0 {
		perm = 0o644
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("创建文件失败: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("写入文件失败: %w", err)
	}
	return f.Close()
}
