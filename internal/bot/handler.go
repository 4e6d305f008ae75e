package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/zulandar/motorpool/internal/dispatch"
	"github.com/zulandar/motorpool/internal/models"
)

const helpText = "📋 **派車管理指令**\n\n" +
	"**查詢指令 (所有人可用):**\n" +
	"`!派車` / `!dispatch` - 查看派車表單\n" +
	"`!派車列表` / `!詳細派車` - 查看含 ID 的詳細列表\n" +
	"`!myid` - 查看你的用戶 ID\n\n" +
	"**管理指令 (僅管理員):**\n" +
	"`!編輯 <ID> 車長 <名字>` - 修改車長\n" +
	"`!編輯 <ID> 駕駛 <名字>` - 修改駕駛\n" +
	"`!刪除 <ID>` - 刪除指定記錄\n" +
	"`!清除派車` / `!dispatch_clear` - 清除所有過期記錄\n" +
	"`!清空所有派車` / `!truncate_dispatch` - 清除所有派車記錄\n\n" +
	"**自動功能:**\n" +
	"✅ 自動偵測派車訊息 - 包含日期+車牌會自動儲存\n" +
	"✅ 支援格式:\n" +
	"```\n12／17\n軍K-20539 9A觀測所佈覽用車\n車長：上士曾智偉\n駕駛：上士周宗暘\n```\n\n" +
	"✅ 自動偵測取消 - 包含日期+「取消」會自動刪除\n" +
	"  • 範例: `原定11/11三分隊線巡取消`"

const badFormatHint = "❌ 偵測到日期，但格式不符合派車資訊。\n\n" +
	"請使用正確的派車格式：\n```\n12/26(五) 任務用車\n車長:   \n駕駛:    \n```\n\n" +
	"輸入 `!help` 查看完整格式說明。"

// isIn reports whether s equals any of the candidates.
func isIn(s string, candidates ...string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}

func (b *Bot) isAdmin(userID string) bool {
	for _, id := range b.cfg.Discord.AdminUsers {
		if id == userID {
			return true
		}
	}
	return false
}

func (b *Bot) isBlacklisted(channelID string) bool {
	for _, id := range b.cfg.Discord.BlacklistChannels {
		if id == channelID {
			return true
		}
	}
	return false
}

func (b *Bot) send(channelID, content string) {
	if _, err := b.sess.ChannelMessageSend(channelID, content); err != nil {
		fmt.Fprintf(b.out, "bot: send to %s: %v\n", channelID, err)
	}
}

func (b *Bot) reply(m *discordgo.MessageCreate, content string) {
	if _, err := b.sess.ChannelMessageSendReply(m.ChannelID, content, m.Reference()); err != nil {
		fmt.Fprintf(b.out, "bot: reply in %s: %v\n", m.ChannelID, err)
	}
}

// onMessage handles one inbound guild message: self/DM/blacklist filtering,
// then the "!" command set, then the dispatch-parsing pipeline.
func (b *Bot) onMessage(ctx context.Context, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	b.mu.Lock()
	self := b.botUserID
	b.mu.Unlock()
	if m.Author.ID == self {
		return
	}
	// Direct messages carry no guild ID; dispatches live in guild channels.
	if m.GuildID == "" {
		return
	}
	if b.isBlacklisted(m.ChannelID) {
		return
	}

	content := strings.ToLower(strings.TrimSpace(m.Content))

	switch {
	case content == "!myid":
		b.send(m.ChannelID, fmt.Sprintf("你的 Discord 用戶 ID 是: `%s`", m.Author.ID))
		return

	case isIn(content, "!dispatch", "!派車", "!派車表", "派車表", "查派車"):
		b.sendRoster(m.ChannelID)
		return

	case isIn(content, "!dispatch_clear", "!清除派車"):
		deleted, err := b.store.DeleteExpired(time.Now().Format(models.DateLayout))
		if err != nil {
			b.send(m.ChannelID, fmt.Sprintf("❌ 清除派車記錄時發生錯誤：%v", err))
			return
		}
		b.send(m.ChannelID, fmt.Sprintf("🗑️ 已刪除 %d 筆過期的派車記錄。", deleted))
		return

	case isIn(content, "!清空所有派車", "!truncate_dispatch"):
		if !b.isAdmin(m.Author.ID) {
			b.send(m.ChannelID, "❌ 只有管理員可以清空所有派車記錄。")
			return
		}
		deleted, err := b.store.ClearAll()
		if err != nil {
			b.send(m.ChannelID, fmt.Sprintf("❌ 清空派車記錄時發生錯誤：%v", err))
			return
		}
		b.send(m.ChannelID, fmt.Sprintf("🗑️ 已清空所有派車記錄，共刪除 %d 筆。", deleted))
		return

	case strings.HasPrefix(content, "!刪除 ") || strings.HasPrefix(content, "!delete "):
		b.handleDelete(m)
		return

	case strings.HasPrefix(content, "!編輯 ") || strings.HasPrefix(content, "!edit "):
		b.handleEdit(m)
		return

	case isIn(content, "!dispatch_list", "!派車列表", "!詳細派車"):
		b.sendDetailedList(m.ChannelID)
		return

	case isIn(content, "!help", "!指令"):
		b.send(m.ChannelID, helpText)
		return
	}

	processed, advisories, err := b.processDispatch(ctx, m.Content, m.ID, m.ChannelID)
	if err != nil {
		fmt.Fprintf(b.out, "bot: process message %s: %v\n", m.ID, err)
		return
	}
	if processed {
		if err := b.sess.MessageReactionAdd(m.ChannelID, m.ID, "✅"); err != nil {
			fmt.Fprintf(b.out, "bot: add reaction: %v\n", err)
		}
		if len(advisories) > 0 {
			b.reply(m, "✅ 派車紀錄已保存\n\n"+strings.Join(advisories, "\n")+
				"\n\n（任務仍然被保存，但建議檢查AI驗證結果）")
		}
		return
	}
	if dispatch.HasDate(m.Content) && !dispatch.IsDispatchMessage(m.Content) {
		b.reply(m, badFormatHint)
	}
}

func (b *Bot) sendRoster(channelID string) {
	recs, err := b.store.Active(time.Now().Format(models.DateLayout))
	if err != nil {
		b.send(channelID, fmt.Sprintf("❌ 取得派車資訊時發生錯誤：%v", err))
		return
	}
	b.send(channelID, dispatch.FormatList(recs))
}

func (b *Bot) sendDetailedList(channelID string) {
	recs, err := b.store.Active(time.Now().Format(models.DateLayout))
	if err != nil {
		b.send(channelID, fmt.Sprintf("❌ 取得列表時發生錯誤：%v", err))
		return
	}
	if len(recs) == 0 {
		b.send(channelID, dispatch.NoActiveDispatches)
		return
	}
	lines := []string{"📋 **派車詳細列表** (含 ID)", ""}
	for _, r := range recs {
		commander := r.Commander
		if commander == "" {
			commander = "(空)"
		}
		driver := r.Driver
		if driver == "" {
			driver = "(空)"
		}
		lines = append(lines, fmt.Sprintf("**ID: %d** | %s | %s | 車長: %s | 駕駛: %s",
			r.ID, r.DispatchDate, r.VehicleID, commander, driver))
	}
	b.send(channelID, strings.Join(lines, "\n"))
}

func (b *Bot) handleDelete(m *discordgo.MessageCreate) {
	if !b.isAdmin(m.Author.ID) {
		b.send(m.ChannelID, "❌ 只有管理員可以刪除記錄。")
		return
	}
	parts := strings.SplitN(strings.TrimSpace(m.Content), " ", 2)
	if len(parts) < 2 {
		b.send(m.ChannelID, "❌ 請提供要刪除的記錄 ID。用法: `!刪除 <ID>`")
		return
	}
	id, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 32)
	if err != nil {
		b.send(m.ChannelID, "❌ ID 必須是數字。")
		return
	}
	deleted, err := b.store.Delete(uint(id))
	if err != nil {
		b.send(m.ChannelID, fmt.Sprintf("❌ 刪除時發生錯誤：%v", err))
		return
	}
	if deleted {
		b.send(m.ChannelID, fmt.Sprintf("✅ 已刪除記錄 ID: %d", id))
	} else {
		b.send(m.ChannelID, fmt.Sprintf("❌ 找不到記錄 ID: %d", id))
	}
}

func (b *Bot) handleEdit(m *discordgo.MessageCreate) {
	if !b.isAdmin(m.Author.ID) {
		b.send(m.ChannelID, "❌ 只有管理員可以編輯記錄。")
		return
	}
	parts := strings.Fields(m.Content)
	if len(parts) < 4 {
		b.send(m.ChannelID, "❌ 用法: `!編輯 <ID> <欄位> <新值>`\n欄位: 車長, 駕駛")
		return
	}
	id, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		b.send(m.ChannelID, "❌ ID 必須是數字。")
		return
	}
	field := parts[2]
	value := strings.Join(parts[3:], " ")

	var updated bool
	switch field {
	case "車長", "commander":
		updated, err = b.store.UpdatePersonnel(uint(id), &value, nil)
	case "駕駛", "driver":
		updated, err = b.store.UpdatePersonnel(uint(id), nil, &value)
	default:
		b.send(m.ChannelID, "❌ 不支援的欄位。可用欄位: 車長, 駕駛")
		return
	}
	if err != nil {
		b.send(m.ChannelID, fmt.Sprintf("❌ 編輯時發生錯誤：%v", err))
		return
	}
	if !updated {
		b.send(m.ChannelID, fmt.Sprintf("❌ 找不到記錄 ID: %d", id))
		return
	}
	fieldName := "車長"
	if field == "駕駛" || field == "driver" {
		fieldName = "駕駛"
	}
	b.send(m.ChannelID, fmt.Sprintf("✅ 已更新記錄 ID %d 的%s為: %s", id, fieldName, value))
}
